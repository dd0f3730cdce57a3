package repository

import (
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/workflow"
	"gorm.io/gorm"
)

// SheetStatusRepository 图幅状态仓储接口
type SheetStatusRepository interface {
	Save(status *model.SheetLayerStatusModel) error
	FindByID(id string) (*model.SheetLayerStatusModel, error)
	Search(filter *SheetStatusFilter) ([]*model.SheetLayerStatusModel, error)
	ApplyDelta(tx *gorm.DB, id string, delta float64) error
}

// SheetStatusFilter 图幅状态查询过滤器
type SheetStatusFilter struct {
	SheetNumber   *string
	LayerID       *string
	ProductID     *string
	MinCompletion *float64
	MaxCompletion *float64
	Limit         int
}

// sheetStatusRepository 图幅状态仓储实现
type sheetStatusRepository struct {
	db *gorm.DB
}

// NewSheetStatusRepository 创建图幅状态仓储
func NewSheetStatusRepository(db *gorm.DB) SheetStatusRepository {
	return &sheetStatusRepository{db: db}
}

// Save 保存图幅状态
func (r *sheetStatusRepository) Save(status *model.SheetLayerStatusModel) error {
	return r.db.Save(status).Error
}

// FindByID 根据 ID 查找图幅状态
func (r *sheetStatusRepository) FindByID(id string) (*model.SheetLayerStatusModel, error) {
	var status model.SheetLayerStatusModel
	if err := r.db.Where("id = ?", id).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// Search 根据过滤器搜索图幅状态
func (r *sheetStatusRepository) Search(filter *SheetStatusFilter) ([]*model.SheetLayerStatusModel, error) {
	var statuses []*model.SheetLayerStatusModel
	query := r.db.Model(&model.SheetLayerStatusModel{})

	if filter != nil {
		if filter.SheetNumber != nil {
			query = query.Where("sheet_number LIKE ?", "%"+*filter.SheetNumber+"%")
		}
		if filter.LayerID != nil {
			query = query.Where("layer_id = ?", *filter.LayerID)
		}
		if filter.ProductID != nil {
			query = query.Where("product_id = ?", *filter.ProductID)
		}
		if filter.MinCompletion != nil {
			query = query.Where("completion >= ?", *filter.MinCompletion)
		}
		if filter.MaxCompletion != nil {
			query = query.Where("completion <= ?", *filter.MaxCompletion)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
	}

	err := query.Order("sheet_number ASC").Find(&statuses).Error
	return statuses, err
}

// ApplyDelta 将生产力增量累加到图幅完成度上 (钳制在 0-1)
// 在审批通过的事务内调用
func (r *sheetStatusRepository) ApplyDelta(tx *gorm.DB, id string, delta float64) error {
	var status model.SheetLayerStatusModel
	if err := tx.Where("id = ?", id).First(&status).Error; err != nil {
		return err
	}
	status.Completion = workflow.ApplyDelta(status.Completion, delta)
	return tx.Save(&status).Error
}
