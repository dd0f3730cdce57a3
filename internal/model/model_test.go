package model_test

import (
	"testing"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFormModel_Validate 测试表单模型校验
func TestFormModel_Validate(t *testing.T) {
	form := &model.FormModel{
		ID:               "form-1",
		TaqniaID:         "emp-1",
		ProductivityDate: "2025-03-10",
		State:            "new",
	}
	require.NoError(t, form.Validate())

	assert.Error(t, (&model.FormModel{}).Validate())

	form.TaqniaID = ""
	assert.Error(t, form.Validate())
}

// TestSheetLayerStatusModel_Validate 测试图幅状态模型校验
func TestSheetLayerStatusModel_Validate(t *testing.T) {
	status := &model.SheetLayerStatusModel{
		ID:          "s1",
		SheetNumber: "NH38-01",
		LayerID:     "layer-1",
		Completion:  0.5,
	}
	require.NoError(t, status.Validate())

	// 完成度越界
	status.Completion = 1.5
	assert.Error(t, status.Validate())
	status.Completion = -0.1
	assert.Error(t, status.Validate())
}

// TestWeeklyTargetModel_Validate 测试周目标模型校验
func TestWeeklyTargetModel_Validate(t *testing.T) {
	target := &model.WeeklyTargetModel{
		ID:        "wt-1",
		ProductID: "prod-1",
		LayerID:   "layer-1",
		WeekStart: "2025-03-09",
		Amount:    3,
	}
	require.NoError(t, target.Validate())

	target.Amount = 0
	assert.Error(t, target.Validate())
}

// TestEventModel_Validate 测试事件模型校验和默认状态
func TestEventModel_Validate(t *testing.T) {
	event := &model.EventModel{
		ID:     "ev-1",
		FormID: "form-1",
		Type:   "form_submitted",
		Data:   []byte(`{}`),
	}
	require.NoError(t, event.Validate())
	// 未指定状态时默认为 pending
	assert.Equal(t, "pending", event.Status)

	event.Data = nil
	assert.Error(t, event.Validate())
}
