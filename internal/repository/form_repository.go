package repository

import (
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"gorm.io/gorm"
)

// FormRepository 表单仓储接口
type FormRepository interface {
	Save(form *model.FormModel) error
	FindByID(id string) (*model.FormModel, error)
	FindByUserAndDate(taqniaID string, date string) (*model.FormModel, error)
	FindByFilter(filter *FormFilter) ([]*model.FormModel, error)
	Delete(id string) error
}

// FormFilter 表单查询过滤器
type FormFilter struct {
	State        *string
	TaqniaID     *string
	SupervisorID *string
	Date         *string
	ProductID    *string
	StartDate    *string
	EndDate      *string
}

// formRepository 表单仓储实现
type formRepository struct {
	db *gorm.DB
}

// NewFormRepository 创建表单仓储
func NewFormRepository(db *gorm.DB) FormRepository {
	return &formRepository{db: db}
}

// Save 保存表单及其嵌套的目标和审批记录
// 不再出现在目标列表中的旧行会被删除 (勾选/取消勾选图幅的语义)
func (r *formRepository) Save(form *model.FormModel) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		keep := make([]string, 0, len(form.Targets))
		for _, t := range form.Targets {
			if t.ID != "" {
				keep = append(keep, t.ID)
			}
		}

		stale := tx.Where("form_id = ?", form.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&model.DailyTargetModel{}).Error; err != nil {
			return err
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(form).Error
	})
}

// FindByID 根据 ID 查找表单 (含目标和审批记录)
func (r *formRepository) FindByID(id string) (*model.FormModel, error) {
	var form model.FormModel
	if err := r.db.Preload("Targets").Preload("Approvals").
		Where("id = ?", id).First(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// FindByUserAndDate 根据 (员工, 生产日期) 查找表单
func (r *formRepository) FindByUserAndDate(taqniaID string, date string) (*model.FormModel, error) {
	var form model.FormModel
	if err := r.db.Preload("Targets").Preload("Approvals").
		Where("taqnia_id = ? AND productivity_date = ?", taqniaID, date).
		First(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// Delete 删除表单 (目标和审批记录级联删除)
func (r *formRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", id).Delete(&model.DailyTargetModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id = ?", id).Delete(&model.ApprovalModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.FormModel{}).Error
	})
}

// FindByFilter 根据过滤器查找表单
func (r *formRepository) FindByFilter(filter *FormFilter) ([]*model.FormModel, error) {
	var forms []*model.FormModel
	query := r.db.Model(&model.FormModel{}).Preload("Targets").Preload("Approvals")

	if filter != nil {
		if filter.State != nil {
			query = query.Where("state = ?", *filter.State)
		}
		if filter.TaqniaID != nil {
			query = query.Where("taqnia_id = ?", *filter.TaqniaID)
		}
		if filter.SupervisorID != nil {
			query = query.Where("supervisor_id = ?", *filter.SupervisorID)
		}
		if filter.Date != nil {
			query = query.Where("productivity_date = ?", *filter.Date)
		}
		if filter.ProductID != nil {
			query = query.Where("product_id = ?", *filter.ProductID)
		}
		if filter.StartDate != nil {
			query = query.Where("productivity_date >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			query = query.Where("productivity_date <= ?", *filter.EndDate)
		}
	}

	err := query.Order("productivity_date DESC, created_at DESC").Find(&forms).Error
	return forms, err
}
