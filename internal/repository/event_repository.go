package repository

import (
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"gorm.io/gorm"
)

// EventRepository 事件仓储接口
type EventRepository interface {
	Save(event *model.EventModel) error
	FindByFormID(formID string) ([]*model.EventModel, error)
	FindPending() ([]*model.EventModel, error)
}

// eventRepository 事件仓储实现
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository 创建事件仓储
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Save 保存事件
func (r *eventRepository) Save(event *model.EventModel) error {
	return r.db.Save(event).Error
}

// FindByFormID 根据表单 ID 查找事件
func (r *eventRepository) FindByFormID(formID string) ([]*model.EventModel, error) {
	var events []*model.EventModel
	err := r.db.Where("form_id = ?", formID).Order("created_at ASC").Find(&events).Error
	return events, err
}

// FindPending 查找待处理的事件
func (r *eventRepository) FindPending() ([]*model.EventModel, error) {
	var events []*model.EventModel
	err := r.db.Where("status = ?", "pending").Order("created_at ASC").Find(&events).Error
	return events, err
}
