package service_test

import (
	"context"
	"testing"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestSheetService 构造图幅状态服务
func newTestSheetService(db *gorm.DB) service.SheetService {
	return service.NewSheetService(
		repository.NewSheetStatusRepository(db),
		service.NewAuditLogService(repository.NewAuditLogRepository(db)),
	)
}

// TestSheetService_Search 测试搜索和可选标注
func TestSheetService_Search(t *testing.T) {
	db := setupTestDB(t)
	createTestSheet(t, db, "s1", 0.5)
	createTestSheet(t, db, "s2", 1)
	svc := newTestSheetService(db)

	// 非 QC 角色: 未完成的可选,已完成的不可选
	views, err := svc.Search(&repository.SheetStatusFilter{}, "production")
	require.NoError(t, err)
	require.Len(t, views, 2)
	byID := map[string]bool{}
	for _, v := range views {
		byID[v.ID] = v.Selectable
	}
	assert.True(t, byID["s1"])
	assert.False(t, byID["s2"])

	// QC 角色: 只有已完成的可选
	views, err = svc.Search(&repository.SheetStatusFilter{}, "daily_qc")
	require.NoError(t, err)
	byID = map[string]bool{}
	for _, v := range views {
		byID[v.ID] = v.Selectable
	}
	assert.False(t, byID["s1"])
	assert.True(t, byID["s2"])
}

// TestSheetService_Save 测试图幅状态保存
func TestSheetService_Save(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestSheetService(db)

	status, err := svc.Save(context.Background(), &service.SaveSheetStatusRequest{
		SheetNumber: "NH38-07",
		LayerID:     "layer-1",
		ProductID:   "prod-1",
		Completion:  0.256,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, status.ID)
	// 完成度归整到两位小数
	assert.Equal(t, 0.26, status.Completion)

	got, err := svc.Get(status.ID)
	require.NoError(t, err)
	assert.Equal(t, "NH38-07", got.SheetNumber)

	// 更新已有记录
	updated, err := svc.Save(context.Background(), &service.SaveSheetStatusRequest{
		ID:          status.ID,
		SheetNumber: "NH38-07",
		LayerID:     "layer-1",
		ProductID:   "prod-1",
		Completion:  0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, status.ID, updated.ID)
	assert.Equal(t, 0.5, updated.Completion)
}

// TestSheetService_Save_Invalid 测试非法完成度
func TestSheetService_Save_Invalid(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestSheetService(db)

	_, err := svc.Save(context.Background(), &service.SaveSheetStatusRequest{
		SheetNumber: "NH38-07",
		LayerID:     "layer-1",
		ProductID:   "prod-1",
		Completion:  1.5,
	})
	assert.Error(t, err)

	_, err = svc.Save(context.Background(), &service.SaveSheetStatusRequest{
		SheetNumber: "NH38-07",
		LayerID:     "layer-1",
		ProductID:   "prod-1",
		Completion:  -0.1,
	})
	assert.Error(t, err)
}
