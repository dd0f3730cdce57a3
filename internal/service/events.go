package service

import (
	"encoding/json"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/google/uuid"
)

// 事件类型
const (
	EventFormSubmitted = "form_submitted"
	EventFormReviewed  = "form_reviewed"
)

// Notifier 通知分发接口
// 由 integration 层实现,将事件持久化并异步推送给相关用户
type Notifier interface {
	Dispatch(event *model.EventModel)
}

// FormEventData 表单事件载荷
type FormEventData struct {
	FormID           string `json:"form_id"`
	TaqniaID         string `json:"taqnia_id"`          // 表单所属编辑员
	SupervisorID     string `json:"supervisor_id"`      // 负责审批的主管
	ProductivityDate string `json:"productivity_date"`  // 生产日期
	State            string `json:"state"`              // 事件发生后的表单状态
	Comment          string `json:"comment,omitempty"`  // 审批意见
}

// newFormEvent 构造表单事件
func newFormEvent(eventType string, form *model.FormModel, comment string) (*model.EventModel, error) {
	data, err := json.Marshal(&FormEventData{
		FormID:           form.ID,
		TaqniaID:         form.TaqniaID,
		SupervisorID:     form.SupervisorID,
		ProductivityDate: form.ProductivityDate,
		State:            form.State,
		Comment:          comment,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &model.EventModel{
		ID:        uuid.New().String(),
		FormID:    form.ID,
		Type:      eventType,
		Data:      data,
		Status:    "pending",
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
