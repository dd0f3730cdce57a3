package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/utils"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/workflow"
	"gorm.io/gorm"
)

// 用户服务错误定义
var (
	ErrUserExists         = errors.New("user with this taqnia ID already exists")
	ErrInvalidRole        = errors.New("invalid user role")
	ErrInvalidProduction  = errors.New("invalid production role")
)

// UserService 用户服务接口
type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*model.UserModel, error)
	Update(ctx context.Context, taqniaID string, req *UpdateUserRequest) (*model.UserModel, error)
	Get(taqniaID string) (*model.UserModel, error)
	List() ([]*model.UserModel, error)
	ListBySupervisor(supervisorID string) ([]*model.UserModel, error)
	Delete(ctx context.Context, taqniaID string) error
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	TaqniaID       string `json:"taqnia_id" binding:"required"` // 员工工号
	Name           string `json:"name" binding:"required"`      // 姓名
	Email          string `json:"email"`                        // 邮箱
	Password       string `json:"password" binding:"required"`  // 初始密码
	Role           string `json:"role" binding:"required"`      // editor/supervisor/manager/admin
	ProductionRole string `json:"production_role"`              // production/daily_qc/final_qc/finalized_qc
	LayerID        string `json:"layer_id"`                     // 默认图层
	ProductID      string `json:"product_id"`                   // 默认产品
	SupervisorID   string `json:"supervisor_id"`                // 所属主管
	OTPEnabled     bool   `json:"otp_enabled"`                  // 是否启用 OTP
}

// UpdateUserRequest 更新用户请求,nil 字段保持不变
type UpdateUserRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	Role           *string `json:"role"`
	ProductionRole *string `json:"production_role"`
	LayerID        *string `json:"layer_id"`
	ProductID      *string `json:"product_id"`
	SupervisorID   *string `json:"supervisor_id"`
	OTPEnabled     *bool   `json:"otp_enabled"`
}

// userService 用户服务实现
type userService struct {
	userRepo    repository.UserRepository
	auditLogSvc AuditLogService
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, auditLogSvc AuditLogService) UserService {
	return &userService{
		userRepo:    userRepo,
		auditLogSvc: auditLogSvc,
	}
}

// validRole 校验系统角色
func validRole(role string) bool {
	switch role {
	case model.RoleEditor, model.RoleSupervisor, model.RoleManager, model.RoleAdmin:
		return true
	}
	return false
}

// Create 创建用户
func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*model.UserModel, error) {
	if !validRole(req.Role) {
		return nil, ErrInvalidRole
	}
	if req.ProductionRole != "" && !workflow.ProductionRole(req.ProductionRole).Valid() {
		return nil, ErrInvalidProduction
	}

	if _, err := s.userRepo.FindByTaqniaID(req.TaqniaID); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.UserModel{
		TaqniaID:       req.TaqniaID,
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		Role:           req.Role,
		ProductionRole: req.ProductionRole,
		LayerID:        req.LayerID,
		ProductID:      req.ProductID,
		SupervisorID:   req.SupervisorID,
		OTPEnabled:     req.OTPEnabled,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit(ctx, "create", user.TaqniaID)
	return user, nil
}

// Update 更新用户
func (s *userService) Update(ctx context.Context, taqniaID string, req *UpdateUserRequest) (*model.UserModel, error) {
	user, err := s.userRepo.FindByTaqniaID(taqniaID)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		if !validRole(*req.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.ProductionRole != nil {
		if *req.ProductionRole != "" && !workflow.ProductionRole(*req.ProductionRole).Valid() {
			return nil, ErrInvalidProduction
		}
		user.ProductionRole = *req.ProductionRole
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if req.LayerID != nil {
		user.LayerID = *req.LayerID
	}
	if req.ProductID != nil {
		user.ProductID = *req.ProductID
	}
	if req.SupervisorID != nil {
		user.SupervisorID = *req.SupervisorID
	}
	if req.OTPEnabled != nil {
		user.OTPEnabled = *req.OTPEnabled
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.audit(ctx, "update", user.TaqniaID)
	return user, nil
}

// Get 获取用户
func (s *userService) Get(taqniaID string) (*model.UserModel, error) {
	return s.userRepo.FindByTaqniaID(taqniaID)
}

// List 列出所有用户
func (s *userService) List() ([]*model.UserModel, error) {
	return s.userRepo.FindAll()
}

// ListBySupervisor 列出某主管名下的编辑员
func (s *userService) ListBySupervisor(supervisorID string) ([]*model.UserModel, error) {
	return s.userRepo.FindBySupervisor(supervisorID)
}

// Delete 删除用户
func (s *userService) Delete(ctx context.Context, taqniaID string) error {
	if err := s.userRepo.Delete(taqniaID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.audit(ctx, "delete", taqniaID)
	return nil
}

// audit 记录用户管理操作
func (s *userService) audit(ctx context.Context, action string, taqniaID string) {
	if s.auditLogSvc == nil {
		return
	}
	operator := getUserIDFromContext(ctx)
	if operator == "" {
		return
	}
	details := fmt.Sprintf(`{"taqnia_id":"%s"}`, taqniaID)
	_ = s.auditLogSvc.RecordAction(ctx, operator, action, "user", taqniaID, details)
}
