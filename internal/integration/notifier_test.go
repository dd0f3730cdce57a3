package integration_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/database"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/integration"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 创建事件分发测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// newTestEvent 构造一条表单提交事件
func newTestEvent(t *testing.T, id string, eventType string) *model.EventModel {
	data, err := json.Marshal(&service.FormEventData{
		FormID:           "form-1",
		TaqniaID:         "emp-1",
		SupervisorID:     "sup-1",
		ProductivityDate: "2025-03-10",
		State:            "pending",
	})
	require.NoError(t, err)

	now := time.Now()
	return &model.EventModel{
		ID:        id,
		FormID:    "form-1",
		Type:      eventType,
		Data:      data,
		Status:    "pending",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// eventStatus 读取事件当前状态
func eventStatus(db *gorm.DB, id string) string {
	var event model.EventModel
	if err := db.Where("id = ?", id).First(&event).Error; err != nil {
		return ""
	}
	return event.Status
}

// TestDispatcher_Dispatch 测试事件持久化和推送
func TestDispatcher_Dispatch(t *testing.T) {
	db := setupTestDB(t)
	hub := websocket.NewHub()
	dispatcher := integration.NewDispatcher(db, hub, 2)
	defer dispatcher.Stop()

	dispatcher.Dispatch(newTestEvent(t, "ev-1", service.EventFormSubmitted))

	// worker 异步推送后标记 success
	assert.Eventually(t, func() bool {
		return eventStatus(db, "ev-1") == "success"
	}, 2*time.Second, 20*time.Millisecond)
}

// TestDispatcher_Dispatch_UnknownType 测试未知事件类型标记失败
func TestDispatcher_Dispatch_UnknownType(t *testing.T) {
	db := setupTestDB(t)
	hub := websocket.NewHub()
	dispatcher := integration.NewDispatcher(db, hub, 1)
	defer dispatcher.Stop()

	dispatcher.Dispatch(newTestEvent(t, "ev-1", "form_archived"))

	assert.Eventually(t, func() bool {
		return eventStatus(db, "ev-1") == "failed"
	}, 2*time.Second, 20*time.Millisecond)
}

// TestDispatcher_ResendPending 测试启动时补发待处理事件
func TestDispatcher_ResendPending(t *testing.T) {
	db := setupTestDB(t)

	// 预先写入一条上次停机前未推送的事件
	event := newTestEvent(t, "ev-1", service.EventFormReviewed)
	require.NoError(t, db.Create(event).Error)

	hub := websocket.NewHub()
	dispatcher := integration.NewDispatcher(db, hub, 1)
	defer dispatcher.Stop()

	require.NoError(t, dispatcher.ResendPending())

	assert.Eventually(t, func() bool {
		return eventStatus(db, "ev-1") == "success"
	}, 2*time.Second, 20*time.Millisecond)
}
