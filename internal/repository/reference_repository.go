package repository

import (
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"gorm.io/gorm"
)

// ReferenceRepository 参考数据仓储接口
// 图层/备注/产品/链接/周目标的简单 CRUD
type ReferenceRepository interface {
	ListLayers() ([]*model.LayerModel, error)
	SaveLayer(layer *model.LayerModel) error
	DeleteLayer(id string) error

	ListRemarks() ([]*model.RemarkModel, error)
	SaveRemark(remark *model.RemarkModel) error
	DeleteRemark(id string) error

	ListProducts() ([]*model.ProductModel, error)
	SaveProduct(product *model.ProductModel) error
	DeleteProduct(id string) error

	ListLinks() ([]*model.LinkModel, error)
	SaveLink(link *model.LinkModel) error
	DeleteLink(id string) error

	ListWeeklyTargets(filter *WeeklyTargetFilter) ([]*model.WeeklyTargetModel, error)
	SaveWeeklyTarget(target *model.WeeklyTargetModel) error
	DeleteWeeklyTarget(id string) error
}

// WeeklyTargetFilter 周目标查询过滤器
type WeeklyTargetFilter struct {
	ProductID *string
	LayerID   *string
	WeekStart *string
}

// referenceRepository 参考数据仓储实现
type referenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository 创建参考数据仓储
func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) ListLayers() ([]*model.LayerModel, error) {
	var layers []*model.LayerModel
	err := r.db.Order("name ASC").Find(&layers).Error
	return layers, err
}

func (r *referenceRepository) SaveLayer(layer *model.LayerModel) error {
	return r.db.Save(layer).Error
}

func (r *referenceRepository) DeleteLayer(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.LayerModel{}).Error
}

func (r *referenceRepository) ListRemarks() ([]*model.RemarkModel, error) {
	var remarks []*model.RemarkModel
	err := r.db.Order("name ASC").Find(&remarks).Error
	return remarks, err
}

func (r *referenceRepository) SaveRemark(remark *model.RemarkModel) error {
	return r.db.Save(remark).Error
}

func (r *referenceRepository) DeleteRemark(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.RemarkModel{}).Error
}

func (r *referenceRepository) ListProducts() ([]*model.ProductModel, error) {
	var products []*model.ProductModel
	err := r.db.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *referenceRepository) SaveProduct(product *model.ProductModel) error {
	return r.db.Save(product).Error
}

func (r *referenceRepository) DeleteProduct(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.ProductModel{}).Error
}

func (r *referenceRepository) ListLinks() ([]*model.LinkModel, error) {
	var links []*model.LinkModel
	err := r.db.Order("name ASC").Find(&links).Error
	return links, err
}

func (r *referenceRepository) SaveLink(link *model.LinkModel) error {
	return r.db.Save(link).Error
}

func (r *referenceRepository) DeleteLink(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.LinkModel{}).Error
}

func (r *referenceRepository) ListWeeklyTargets(filter *WeeklyTargetFilter) ([]*model.WeeklyTargetModel, error) {
	var targets []*model.WeeklyTargetModel
	query := r.db.Model(&model.WeeklyTargetModel{})

	if filter != nil {
		if filter.ProductID != nil {
			query = query.Where("product_id = ?", *filter.ProductID)
		}
		if filter.LayerID != nil {
			query = query.Where("layer_id = ?", *filter.LayerID)
		}
		if filter.WeekStart != nil {
			query = query.Where("week_start = ?", *filter.WeekStart)
		}
	}

	err := query.Order("week_start DESC").Find(&targets).Error
	return targets, err
}

func (r *referenceRepository) SaveWeeklyTarget(target *model.WeeklyTargetModel) error {
	return r.db.Save(target).Error
}

func (r *referenceRepository) DeleteWeeklyTarget(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.WeeklyTargetModel{}).Error
}
