package repository_test

import (
	"testing"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/database"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 创建仓储测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// newTestForm 构造一份带两条目标的表单
func newTestForm(id string, taqniaID string, date string) *model.FormModel {
	now := time.Now()
	return &model.FormModel{
		ID:               id,
		TaqniaID:         taqniaID,
		ProductivityDate: date,
		ProductID:        "prod-1",
		SupervisorID:     "sup-1",
		State:            "new",
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
		Targets: []model.DailyTargetModel{
			{ID: id + "-t1", FormID: id, SheetStatusID: "sheet-1", LayerID: "layer-1", RemarkID: "remark-1", Productivity: 0.25, CreatedAt: now},
			{ID: id + "-t2", FormID: id, SheetStatusID: "sheet-2", LayerID: "layer-1", RemarkID: "remark-1", Productivity: 0.5, CreatedAt: now},
		},
	}
}

// TestFormRepository_SaveAndFind 测试表单保存和查询
func TestFormRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewFormRepository(db)

	form := newTestForm("form-1", "emp-1", "2025-03-10")
	require.NoError(t, repo.Save(form))

	got, err := repo.FindByID("form-1")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", got.TaqniaID)
	assert.Len(t, got.Targets, 2)

	got, err = repo.FindByUserAndDate("emp-1", "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "form-1", got.ID)

	_, err = repo.FindByUserAndDate("emp-1", "2025-03-11")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestFormRepository_SaveRemovesStaleTargets 测试保存时清理不再出现的目标行
func TestFormRepository_SaveRemovesStaleTargets(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewFormRepository(db)

	form := newTestForm("form-1", "emp-1", "2025-03-10")
	require.NoError(t, repo.Save(form))

	// 取消勾选第二个图幅
	form.Targets = form.Targets[:1]
	require.NoError(t, repo.Save(form))

	got, err := repo.FindByID("form-1")
	require.NoError(t, err)
	require.Len(t, got.Targets, 1)
	assert.Equal(t, "form-1-t1", got.Targets[0].ID)
}

// TestFormRepository_Delete 测试表单删除级联
func TestFormRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewFormRepository(db)

	form := newTestForm("form-1", "emp-1", "2025-03-10")
	form.Approvals = []model.ApprovalModel{
		{ID: "appr-1", FormID: "form-1", State: "pending", CreatedAt: time.Now()},
	}
	require.NoError(t, repo.Save(form))

	require.NoError(t, repo.Delete("form-1"))

	_, err := repo.FindByID("form-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var targetCount, approvalCount int64
	db.Model(&model.DailyTargetModel{}).Where("form_id = ?", "form-1").Count(&targetCount)
	db.Model(&model.ApprovalModel{}).Where("form_id = ?", "form-1").Count(&approvalCount)
	assert.Zero(t, targetCount)
	assert.Zero(t, approvalCount)
}

// TestFormRepository_FindByFilter 测试过滤查询
func TestFormRepository_FindByFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewFormRepository(db)

	f1 := newTestForm("form-1", "emp-1", "2025-03-10")
	f1.State = "pending"
	f2 := newTestForm("form-2", "emp-2", "2025-03-11")
	f2.State = "approved"
	f3 := newTestForm("form-3", "emp-1", "2025-03-12")
	f3.State = "pending"
	f3.SupervisorID = "sup-2"
	for _, f := range []*model.FormModel{f1, f2, f3} {
		require.NoError(t, repo.Save(f))
	}

	// 按状态
	pending := "pending"
	forms, err := repo.FindByFilter(&repository.FormFilter{State: &pending})
	require.NoError(t, err)
	assert.Len(t, forms, 2)

	// 按状态和主管
	sup := "sup-1"
	forms, err = repo.FindByFilter(&repository.FormFilter{State: &pending, SupervisorID: &sup})
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "form-1", forms[0].ID)

	// 按员工
	emp := "emp-1"
	forms, err = repo.FindByFilter(&repository.FormFilter{TaqniaID: &emp})
	require.NoError(t, err)
	assert.Len(t, forms, 2)

	// 按日期区间,结果按日期倒序
	start, end := "2025-03-10", "2025-03-11"
	forms, err = repo.FindByFilter(&repository.FormFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, "form-2", forms[0].ID)

	// 空过滤器返回全部
	forms, err = repo.FindByFilter(nil)
	require.NoError(t, err)
	assert.Len(t, forms, 3)
}
