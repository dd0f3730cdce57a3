package model

import (
	"errors"
	"time"
)

// SheetLayerStatusModel 图幅-图层完成状态数据模型
// Completion 为该 (图幅, 图层) 的权威完成度 (0-1),由服务端在审批通过时累加
type SheetLayerStatusModel struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	SheetNumber string    `gorm:"type:varchar(64);not null;index:idx_sheet_layer,unique" json:"sheet_number"`
	LayerID     string    `gorm:"type:varchar(64);not null;index:idx_sheet_layer,unique" json:"layer_id"`
	ProductID   string    `gorm:"type:varchar(64);not null;index:idx_sheet_layer,unique;index" json:"product_id"`
	Completion  float64   `gorm:"not null;default:0" json:"completion"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (SheetLayerStatusModel) TableName() string {
	return "sheet_layer_status"
}

// Validate 验证图幅状态模型
func (sm *SheetLayerStatusModel) Validate() error {
	if sm.ID == "" {
		return errors.New("sheet status ID is required")
	}
	if sm.SheetNumber == "" {
		return errors.New("sheet number is required")
	}
	if sm.LayerID == "" {
		return errors.New("layer ID is required")
	}
	if sm.Completion < 0 || sm.Completion > 1 {
		return errors.New("completion must be between 0 and 1")
	}
	return nil
}
