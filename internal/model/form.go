package model

import (
	"errors"
	"time"
)

// FormModel 日报表单数据模型
// 每个 (员工, 生产日期) 最多存在一份表单
type FormModel struct {
	ID               string             `gorm:"primaryKey;type:varchar(64)" json:"id"`
	TaqniaID         string             `gorm:"type:varchar(64);not null;index:idx_forms_user_date,unique" json:"taqnia_id"`
	ProductivityDate string             `gorm:"type:varchar(10);not null;index:idx_forms_user_date,unique;index" json:"productivity_date"` // YYYY-MM-DD
	ProductID        string             `gorm:"type:varchar(64);index" json:"product_id"`
	SupervisorID     string             `gorm:"type:varchar(64);index" json:"supervisor_id"`
	State            string             `gorm:"type:varchar(32);not null;index" json:"state"` // new/pending/approved/rejected
	Comment          string             `gorm:"type:text" json:"comment"`
	Version          int                `gorm:"not null;default:1" json:"version"` // 乐观锁版本号
	SubmissionDate   *time.Time         `gorm:"index" json:"submission_date"`
	CreatedAt        time.Time          `gorm:"not null;index" json:"created_at"`
	UpdatedAt        time.Time          `gorm:"not null" json:"updated_at"`
	Targets          []DailyTargetModel `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE" json:"targets"`
	Approvals        []ApprovalModel    `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE" json:"approvals"`
}

// TableName 指定表名
func (FormModel) TableName() string {
	return "forms"
}

// Validate 验证表单模型
func (fm *FormModel) Validate() error {
	if fm.ID == "" {
		return errors.New("form ID is required")
	}
	if fm.TaqniaID == "" {
		return errors.New("taqnia ID is required")
	}
	if fm.ProductivityDate == "" {
		return errors.New("productivity date is required")
	}
	if fm.State == "" {
		return errors.New("form state is required")
	}
	return nil
}

// DailyTargetModel 每日目标数据模型
// 一行代表针对某个 (图幅, 图层) 登记的一笔工作量
type DailyTargetModel struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	FormID        string    `gorm:"type:varchar(64);not null;index" json:"form_id"`
	SheetStatusID string    `gorm:"type:varchar(64);not null" json:"sheet_status_id"`
	LayerID       string    `gorm:"type:varchar(64);not null" json:"layer_id"`
	RemarkID      string    `gorm:"type:varchar(64)" json:"remark_id"`
	Productivity  float64   `gorm:"not null" json:"productivity"` // 本表单贡献的完成度增量 (0-1)
	HoursWorked   float64   `gorm:"default:0" json:"hours_worked"`
	IsQC          bool      `gorm:"default:false" json:"is_qc"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

// TableName 指定表名
func (DailyTargetModel) TableName() string {
	return "daily_targets"
}

// Validate 验证每日目标模型
func (dm *DailyTargetModel) Validate() error {
	if dm.ID == "" {
		return errors.New("target ID is required")
	}
	if dm.FormID == "" {
		return errors.New("form ID is required")
	}
	if dm.SheetStatusID == "" {
		return errors.New("sheet status ID is required")
	}
	return nil
}

// ApprovalModel 审批记录数据模型
// 当前流程为单步审批,每份表单持有一条审批记录
type ApprovalModel struct {
	ID           string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	FormID       string     `gorm:"type:varchar(64);not null;index" json:"form_id"`
	State        string     `gorm:"type:varchar(32);not null;index" json:"state"` // new/pending/approved/rejected
	SupervisorID string     `gorm:"type:varchar(64);index" json:"supervisor_id"`
	Comment      string     `gorm:"type:text" json:"comment"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (ApprovalModel) TableName() string {
	return "approvals"
}

// Validate 验证审批记录模型
func (am *ApprovalModel) Validate() error {
	if am.ID == "" {
		return errors.New("approval ID is required")
	}
	if am.FormID == "" {
		return errors.New("form ID is required")
	}
	if am.State == "" {
		return errors.New("approval state is required")
	}
	return nil
}
