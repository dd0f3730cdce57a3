package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// approveForm 直接把表单置为审批通过 (统计测试不需要走完整审批流)
func approveForm(t *testing.T, db *gorm.DB, formID string) {
	require.NoError(t, db.Model(&model.FormModel{}).
		Where("id = ?", formID).
		Update("state", string(workflow.StateApproved)).Error)
}

// seedDashboardData 准备统计测试数据:
// emp-1 (sup-1 名下) 在 2025-03-10 提交并通过 0.5 的产出,
// emp-2 (sup-2 名下) 在同日提交 0.25 仍在待审批
func seedDashboardData(t *testing.T, db *gorm.DB) service.FormService {
	createTestUser(t, db, "emp-1", model.RoleEditor, "production", "sup-1")
	createTestUser(t, db, "emp-2", model.RoleEditor, "production", "sup-2")
	createTestSheet(t, db, "s1", 0)
	createTestSheet(t, db, "s2", 0)

	formSvc := newTestFormService(db)

	f1, err := formSvc.Save(context.Background(), &service.SaveFormRequest{
		TaqniaID:         "emp-1",
		ProductivityDate: "2025-03-10",
		Targets:          []service.SaveTargetRequest{{SheetStatusID: "s1", RemarkID: "r", SelectedCompletion: floatPtr(0.5)}},
	})
	require.NoError(t, err)
	_, err = formSvc.Submit(context.Background(), f1.ID)
	require.NoError(t, err)
	approveForm(t, db, f1.ID)

	f2, err := formSvc.Save(context.Background(), &service.SaveFormRequest{
		TaqniaID:         "emp-2",
		ProductivityDate: "2025-03-10",
		Targets:          []service.SaveTargetRequest{{SheetStatusID: "s2", RemarkID: "r", SelectedCompletion: floatPtr(0.25)}},
	})
	require.NoError(t, err)
	_, err = formSvc.Submit(context.Background(), f2.ID)
	require.NoError(t, err)

	return formSvc
}

// TestDashboardService_DailySummary 测试日汇总
func TestDashboardService_DailySummary(t *testing.T) {
	db := setupTestDB(t)
	seedDashboardData(t, db)
	svc := service.NewDashboardService(db)

	summary, err := svc.DailySummary("2025-03-10", nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", summary.Date)
	require.Len(t, summary.Editors, 2)

	// 按工号升序
	assert.Equal(t, "emp-1", summary.Editors[0].TaqniaID)
	assert.Equal(t, string(workflow.StateApproved), summary.Editors[0].State)
	assert.Equal(t, 0.5, summary.Editors[0].TotalProductivity)
	assert.EqualValues(t, 1, summary.Editors[0].TargetCount)

	assert.Equal(t, "emp-2", summary.Editors[1].TaqniaID)
	assert.Equal(t, string(workflow.StatePending), summary.Editors[1].State)
	assert.Equal(t, 0.25, summary.Editors[1].TotalProductivity)

	// 限定主管
	summary, err = svc.DailySummary("2025-03-10", strPtr("sup-1"))
	require.NoError(t, err)
	require.Len(t, summary.Editors, 1)
	assert.Equal(t, "emp-1", summary.Editors[0].TaqniaID)

	// 没有表单的日期
	summary, err = svc.DailySummary("2025-03-20", nil)
	require.NoError(t, err)
	assert.Empty(t, summary.Editors)
}

// TestDashboardService_WeeklySummary 测试周汇总
func TestDashboardService_WeeklySummary(t *testing.T) {
	db := setupTestDB(t)
	seedDashboardData(t, db)
	svc := service.NewDashboardService(db)

	// 2025-03-10 所在周从 2025-03-09 (周日) 开始
	now := time.Now()
	require.NoError(t, db.Create(&model.LayerModel{
		ID: "layer-1", Name: "Roads", CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&model.WeeklyTargetModel{
		ID: "wt-1", ProductID: "prod-1", LayerID: "layer-1",
		WeekStart: "2025-03-09", Amount: 3, CreatedAt: now, UpdatedAt: now,
	}).Error)

	summary, err := svc.WeeklySummary("2025-03-12", nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09", summary.WeekStart)
	assert.Equal(t, "2025-03-15", summary.WeekEnd)
	require.Len(t, summary.Layers, 1)

	entry := summary.Layers[0]
	assert.Equal(t, "layer-1", entry.LayerID)
	assert.Equal(t, "Roads", entry.LayerName)
	assert.Equal(t, 3.0, entry.TargetAmount)
	// 日目标 = 周目标 / 每周 6 个工作日
	assert.Equal(t, 0.5, entry.DailyTarget)
	// 只统计审批通过的产出 (emp-2 的 0.25 仍在待审批)
	assert.Equal(t, 0.5, entry.Achieved)
	assert.Equal(t, 0.17, entry.Progress)
}

// TestDashboardService_WeeklySummary_NoTarget 测试有产出但未设目标的图层
func TestDashboardService_WeeklySummary_NoTarget(t *testing.T) {
	db := setupTestDB(t)
	seedDashboardData(t, db)
	svc := service.NewDashboardService(db)

	summary, err := svc.WeeklySummary("2025-03-12", nil)
	require.NoError(t, err)
	require.Len(t, summary.Layers, 1)

	entry := summary.Layers[0]
	assert.Equal(t, "layer-1", entry.LayerID)
	assert.Equal(t, 0.0, entry.TargetAmount)
	assert.Equal(t, 0.5, entry.Achieved)
	assert.Equal(t, 0.0, entry.Progress)

	// 非法日期
	_, err = svc.WeeklySummary("bad-date", nil)
	assert.Error(t, err)
}

// TestDashboardService_ProjectSummary 测试项目汇总
func TestDashboardService_ProjectSummary(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()
	require.NoError(t, db.Create(&model.LayerModel{
		ID: "layer-1", Name: "Roads", CreatedAt: now, UpdatedAt: now,
	}).Error)
	createTestSheet(t, db, "s1", 0.5)
	createTestSheet(t, db, "s2", 1)
	svc := service.NewDashboardService(db)

	summary, err := svc.ProjectSummary("prod-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, summary.TotalSheets)
	assert.EqualValues(t, 1, summary.CompletedSheets)
	require.Len(t, summary.Layers, 1)
	assert.Equal(t, "Roads", summary.Layers[0].LayerName)
	assert.EqualValues(t, 2, summary.Layers[0].SheetCount)
	assert.Equal(t, 0.75, summary.Layers[0].AvgCompletion)

	// 无图幅的产品
	summary, err = svc.ProjectSummary("prod-x")
	require.NoError(t, err)
	assert.Zero(t, summary.TotalSheets)
	assert.Empty(t, summary.Layers)
}

// TestDashboardService_EditorPerformance 测试编辑员产出统计
func TestDashboardService_EditorPerformance(t *testing.T) {
	db := setupTestDB(t)
	seedDashboardData(t, db)
	svc := service.NewDashboardService(db)

	// 只统计审批通过的表单
	perf, err := svc.EditorPerformance("2025-03-01", "2025-03-31", nil)
	require.NoError(t, err)
	require.Len(t, perf, 1)
	assert.Equal(t, "emp-1", perf[0].TaqniaID)
	assert.EqualValues(t, 1, perf[0].DaysWorked)
	assert.Equal(t, 0.5, perf[0].TotalProductivity)
	assert.Equal(t, 0.5, perf[0].AvgPerDay)

	// 限定主管
	perf, err = svc.EditorPerformance("2025-03-01", "2025-03-31", strPtr("sup-2"))
	require.NoError(t, err)
	assert.Empty(t, perf)

	// 区间外
	perf, err = svc.EditorPerformance("2025-04-01", "2025-04-30", nil)
	require.NoError(t, err)
	assert.Empty(t, perf)
}
