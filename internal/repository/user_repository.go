package repository

import (
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"gorm.io/gorm"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	Save(user *model.UserModel) error
	FindByTaqniaID(taqniaID string) (*model.UserModel, error)
	FindAll() ([]*model.UserModel, error)
	FindBySupervisor(supervisorID string) ([]*model.UserModel, error)
	Delete(taqniaID string) error
}

// userRepository 用户仓储实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Save 保存用户
func (r *userRepository) Save(user *model.UserModel) error {
	return r.db.Save(user).Error
}

// FindByTaqniaID 根据工号查找用户
func (r *userRepository) FindByTaqniaID(taqniaID string) (*model.UserModel, error) {
	var user model.UserModel
	if err := r.db.Where("taqnia_id = ?", taqniaID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll 查找所有用户
func (r *userRepository) FindAll() ([]*model.UserModel, error) {
	var users []*model.UserModel
	err := r.db.Order("taqnia_id ASC").Find(&users).Error
	return users, err
}

// FindBySupervisor 查找某主管名下的编辑员
func (r *userRepository) FindBySupervisor(supervisorID string) ([]*model.UserModel, error) {
	var users []*model.UserModel
	err := r.db.Where("supervisor_id = ?", supervisorID).Order("taqnia_id ASC").Find(&users).Error
	return users, err
}

// Delete 删除用户
func (r *userRepository) Delete(taqniaID string) error {
	return r.db.Where("taqnia_id = ?", taqniaID).Delete(&model.UserModel{}).Error
}
