package model

import (
	"errors"
	"time"
)

// 系统角色
const (
	RoleEditor     = "editor"
	RoleSupervisor = "supervisor"
	RoleManager    = "manager"
	RoleAdmin      = "admin"
)

// UserModel 用户数据模型
// TaqniaID 为员工工号,作为主键使用
type UserModel struct {
	TaqniaID       string    `gorm:"primaryKey;type:varchar(64)" json:"taqnia_id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Email          string    `gorm:"type:varchar(255);index" json:"email"`
	PasswordHash   string    `gorm:"type:varchar(255);not null" json:"-"`
	Role           string    `gorm:"type:varchar(32);not null;index" json:"role"` // editor/supervisor/manager/admin
	ProductionRole string    `gorm:"type:varchar(32)" json:"production_role"`     // production/daily_qc/final_qc/finalized_qc
	LayerID        string    `gorm:"type:varchar(64)" json:"layer_id"`            // 默认图层
	ProductID      string    `gorm:"type:varchar(64)" json:"product_id"`          // 默认产品
	SupervisorID   string    `gorm:"type:varchar(64);index" json:"supervisor_id"` // 所属主管工号
	OTPEnabled     bool      `gorm:"default:false" json:"otp_enabled"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// Validate 验证用户模型
func (um *UserModel) Validate() error {
	if um.TaqniaID == "" {
		return errors.New("taqnia ID is required")
	}
	if um.Name == "" {
		return errors.New("user name is required")
	}
	if um.Role == "" {
		return errors.New("user role is required")
	}
	return nil
}
