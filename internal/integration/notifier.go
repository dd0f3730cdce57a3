package integration

import (
	"encoding/json"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/websocket"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// notification 推送给前端的通知载荷
type notification struct {
	Type             string `json:"type"`
	FormID           string `json:"form_id"`
	TaqniaID         string `json:"taqnia_id"`
	ProductivityDate string `json:"productivity_date"`
	State            string `json:"state"`
	Comment          string `json:"comment,omitempty"`
}

// Dispatcher 事件分发器
// 将表单事件持久化后经由 WebSocket 异步推送:
// 提交事件通知主管,审批事件通知编辑员
type Dispatcher struct {
	eventRepo repository.EventRepository
	hub       *websocket.Hub
	queue     chan *model.EventModel
	workers   int
	stop      chan struct{}
}

// NewDispatcher 创建事件分发器并启动 worker
func NewDispatcher(db *gorm.DB, hub *websocket.Hub, workers int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}

	d := &Dispatcher{
		eventRepo: repository.NewEventRepository(db),
		hub:       hub,
		queue:     make(chan *model.EventModel, 1000),
		workers:   workers,
		stop:      make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		go d.worker()
	}

	return d
}

// Dispatch 持久化事件并入队推送
// 队列满时事件保持 pending 状态,等待 ResendPending 兜底
func (d *Dispatcher) Dispatch(event *model.EventModel) {
	if err := d.eventRepo.Save(event); err != nil {
		logrus.WithError(err).WithField("event_id", event.ID).Error("保存事件失败")
		return
	}

	select {
	case d.queue <- event:
	default:
		logrus.WithFields(logrus.Fields{
			"event_id": event.ID,
			"type":     event.Type,
		}).Warn("事件队列已满,推迟推送")
	}
}

// ResendPending 重新入队所有待处理事件
// 服务启动时调用,补发上次停机前未推送完的通知
func (d *Dispatcher) ResendPending() error {
	events, err := d.eventRepo.FindPending()
	if err != nil {
		return err
	}
	for _, event := range events {
		select {
		case d.queue <- event:
		default:
			return nil
		}
	}
	return nil
}

// worker 事件推送 worker
func (d *Dispatcher) worker() {
	for {
		select {
		case event := <-d.queue:
			d.deliver(event)
		case <-d.stop:
			return
		}
	}
}

// deliver 推送单个事件
func (d *Dispatcher) deliver(event *model.EventModel) {
	var data service.FormEventData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		logrus.WithError(err).WithField("event_id", event.ID).Error("事件载荷解析失败")
		d.markStatus(event, "failed")
		return
	}

	payload, err := json.Marshal(&notification{
		Type:             event.Type,
		FormID:           data.FormID,
		TaqniaID:         data.TaqniaID,
		ProductivityDate: data.ProductivityDate,
		State:            data.State,
		Comment:          data.Comment,
	})
	if err != nil {
		logrus.WithError(err).WithField("event_id", event.ID).Error("通知序列化失败")
		d.markStatus(event, "failed")
		return
	}

	switch event.Type {
	case service.EventFormSubmitted:
		if data.SupervisorID != "" {
			d.hub.BroadcastToUser(data.SupervisorID, payload)
		}
	case service.EventFormReviewed:
		d.hub.BroadcastToUser(data.TaqniaID, payload)
	default:
		logrus.WithField("type", event.Type).Warn("未知事件类型")
		d.markStatus(event, "failed")
		return
	}

	d.markStatus(event, "success")
}

// markStatus 更新事件状态
func (d *Dispatcher) markStatus(event *model.EventModel, status string) {
	event.Status = status
	event.UpdatedAt = time.Now()
	if err := d.eventRepo.Save(event); err != nil {
		logrus.WithError(err).WithField("event_id", event.ID).Error("更新事件状态失败")
	}
}

// Stop 停止事件分发器
func (d *Dispatcher) Stop() {
	close(d.stop)
}
