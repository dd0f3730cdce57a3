package model

import (
	"errors"
	"time"
)

// LayerModel 图层参考数据 (如道路、建筑)
type LayerModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (LayerModel) TableName() string {
	return "layers"
}

// RemarkModel 备注参考数据
type RemarkModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (RemarkModel) TableName() string {
	return "remarks"
}

// ProductModel 产品参考数据
type ProductModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// LinkModel 常用链接参考数据
type LinkModel struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	URL         string    `gorm:"type:varchar(1024);not null" json:"url"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (LinkModel) TableName() string {
	return "links"
}

// WeeklyTargetModel 周目标数据模型
// 某产品某图层在某周 (周日起始) 的目标工作量
type WeeklyTargetModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ProductID string    `gorm:"type:varchar(64);not null;index:idx_weekly_target,unique" json:"product_id"`
	LayerID   string    `gorm:"type:varchar(64);not null;index:idx_weekly_target,unique" json:"layer_id"`
	WeekStart string    `gorm:"type:varchar(10);not null;index:idx_weekly_target,unique" json:"week_start"` // YYYY-MM-DD, 周日
	Amount    float64   `gorm:"not null" json:"amount"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (WeeklyTargetModel) TableName() string {
	return "weekly_targets"
}

// Validate 验证周目标模型
func (wm *WeeklyTargetModel) Validate() error {
	if wm.ProductID == "" {
		return errors.New("product ID is required")
	}
	if wm.LayerID == "" {
		return errors.New("layer ID is required")
	}
	if wm.WeekStart == "" {
		return errors.New("week start is required")
	}
	if wm.Amount <= 0 {
		return errors.New("target amount must be greater than 0")
	}
	return nil
}
