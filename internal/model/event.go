package model

import (
	"errors"
	"time"
)

// EventModel 事件数据模型
// 表单提交/审批产生的通知事件,由 worker 异步推送
type EventModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	FormID     string    `gorm:"type:varchar(64);not null;index" json:"form_id"`
	Type       string    `gorm:"type:varchar(32);not null;index" json:"type"` // form_submitted/form_reviewed
	Data       []byte    `gorm:"not null" json:"data"`                        // 序列化后的事件数据
	Status     string    `gorm:"type:varchar(32);not null;default:'pending'" json:"status"` // pending/success/failed
	RetryCount int       `gorm:"type:int;default:0" json:"retry_count"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (EventModel) TableName() string {
	return "events"
}

// Validate 验证事件模型
func (em *EventModel) Validate() error {
	if em.ID == "" {
		return errors.New("event ID is required")
	}
	if em.FormID == "" {
		return errors.New("form ID is required")
	}
	if em.Type == "" {
		return errors.New("event type is required")
	}
	if len(em.Data) == 0 {
		return errors.New("event data is required")
	}
	if em.Status == "" {
		em.Status = "pending"
	}
	return nil
}
