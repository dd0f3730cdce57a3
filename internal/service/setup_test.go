package service_test

import (
	"testing"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/database"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 创建服务测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// createTestUser 写入一个测试用户
func createTestUser(t *testing.T, db *gorm.DB, taqniaID string, role string, productionRole string, supervisorID string) *model.UserModel {
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	now := time.Now()
	user := &model.UserModel{
		TaqniaID:       taqniaID,
		Name:           "User " + taqniaID,
		PasswordHash:   hash,
		Role:           role,
		ProductionRole: productionRole,
		ProductID:      "prod-1",
		SupervisorID:   supervisorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestSheet 写入一条图幅状态
func createTestSheet(t *testing.T, db *gorm.DB, id string, completion float64) *model.SheetLayerStatusModel {
	status := &model.SheetLayerStatusModel{
		ID:          id,
		SheetNumber: "NH38-" + id,
		LayerID:     "layer-1",
		ProductID:   "prod-1",
		Completion:  completion,
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, db.Create(status).Error)
	return status
}

// newTestFormService 构造表单服务及其依赖
func newTestFormService(db *gorm.DB) service.FormService {
	auditSvc := service.NewAuditLogService(repository.NewAuditLogRepository(db))
	return service.NewFormService(
		repository.NewFormRepository(db),
		repository.NewUserRepository(db),
		repository.NewSheetStatusRepository(db),
		repository.NewStateHistoryRepository(db),
		auditSvc,
		nil,
	)
}

// newTestApprovalService 构造审批服务及其依赖
func newTestApprovalService(db *gorm.DB) service.ApprovalService {
	auditSvc := service.NewAuditLogService(repository.NewAuditLogRepository(db))
	return service.NewApprovalService(
		db,
		repository.NewFormRepository(db),
		repository.NewSheetStatusRepository(db),
		repository.NewStateHistoryRepository(db),
		auditSvc,
		nil,
	)
}

// floatPtr 返回 float64 指针
func floatPtr(v float64) *float64 {
	return &v
}

// boolPtr 返回 bool 指针
func boolPtr(v bool) *bool {
	return &v
}

// strPtr 返回 string 指针
func strPtr(v string) *string {
	return &v
}
