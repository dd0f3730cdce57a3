package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/utils"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/workflow"
	"github.com/google/uuid"
)

// ReferenceService 参考数据服务接口
// 图层/备注/产品/链接/周目标的增删查
type ReferenceService interface {
	ListLayers() ([]*model.LayerModel, error)
	SaveLayer(ctx context.Context, req *SaveNamedRequest) (*model.LayerModel, error)
	DeleteLayer(ctx context.Context, id string) error

	ListRemarks() ([]*model.RemarkModel, error)
	SaveRemark(ctx context.Context, req *SaveNamedRequest) (*model.RemarkModel, error)
	DeleteRemark(ctx context.Context, id string) error

	ListProducts() ([]*model.ProductModel, error)
	SaveProduct(ctx context.Context, req *SaveNamedRequest) (*model.ProductModel, error)
	DeleteProduct(ctx context.Context, id string) error

	ListLinks() ([]*model.LinkModel, error)
	SaveLink(ctx context.Context, req *SaveLinkRequest) (*model.LinkModel, error)
	DeleteLink(ctx context.Context, id string) error

	ListWeeklyTargets(filter *repository.WeeklyTargetFilter) ([]*model.WeeklyTargetModel, error)
	SaveWeeklyTarget(ctx context.Context, req *SaveWeeklyTargetRequest) (*model.WeeklyTargetModel, error)
	DeleteWeeklyTarget(ctx context.Context, id string) error
}

// SaveNamedRequest 保存命名参考数据请求 (图层/备注/产品)
type SaveNamedRequest struct {
	ID   string `json:"id"`                       // 为空时新建
	Name string `json:"name" binding:"required"`  // 名称,同类内唯一
}

// SaveLinkRequest 保存链接请求
type SaveLinkRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Description string `json:"description"`
}

// SaveWeeklyTargetRequest 保存周目标请求
// WeekStart 接受周内任意日期,服务端归一化为周日
type SaveWeeklyTargetRequest struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id" binding:"required"`
	LayerID   string  `json:"layer_id" binding:"required"`
	WeekStart string  `json:"week_start" binding:"required"` // YYYY-MM-DD
	Amount    float64 `json:"amount" binding:"required"`
}

// referenceService 参考数据服务实现
type referenceService struct {
	refRepo     repository.ReferenceRepository
	auditLogSvc AuditLogService
}

// NewReferenceService 创建参考数据服务
func NewReferenceService(refRepo repository.ReferenceRepository, auditLogSvc AuditLogService) ReferenceService {
	return &referenceService{
		refRepo:     refRepo,
		auditLogSvc: auditLogSvc,
	}
}

func (s *referenceService) ListLayers() ([]*model.LayerModel, error) {
	return s.refRepo.ListLayers()
}

func (s *referenceService) SaveLayer(ctx context.Context, req *SaveNamedRequest) (*model.LayerModel, error) {
	name, err := utils.TrimAndValidate(req.Name, 255)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	layer := &model.LayerModel{ID: req.ID, Name: name, CreatedAt: now, UpdatedAt: now}
	if layer.ID == "" {
		layer.ID = uuid.New().String()
	}
	if err := s.refRepo.SaveLayer(layer); err != nil {
		return nil, fmt.Errorf("failed to save layer: %w", err)
	}
	s.audit(ctx, "save", "layer", layer.ID)
	return layer, nil
}

func (s *referenceService) DeleteLayer(ctx context.Context, id string) error {
	if err := s.refRepo.DeleteLayer(id); err != nil {
		return err
	}
	s.audit(ctx, "delete", "layer", id)
	return nil
}

func (s *referenceService) ListRemarks() ([]*model.RemarkModel, error) {
	return s.refRepo.ListRemarks()
}

func (s *referenceService) SaveRemark(ctx context.Context, req *SaveNamedRequest) (*model.RemarkModel, error) {
	name, err := utils.TrimAndValidate(req.Name, 255)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	remark := &model.RemarkModel{ID: req.ID, Name: name, CreatedAt: now, UpdatedAt: now}
	if remark.ID == "" {
		remark.ID = uuid.New().String()
	}
	if err := s.refRepo.SaveRemark(remark); err != nil {
		return nil, fmt.Errorf("failed to save remark: %w", err)
	}
	s.audit(ctx, "save", "remark", remark.ID)
	return remark, nil
}

func (s *referenceService) DeleteRemark(ctx context.Context, id string) error {
	if err := s.refRepo.DeleteRemark(id); err != nil {
		return err
	}
	s.audit(ctx, "delete", "remark", id)
	return nil
}

func (s *referenceService) ListProducts() ([]*model.ProductModel, error) {
	return s.refRepo.ListProducts()
}

func (s *referenceService) SaveProduct(ctx context.Context, req *SaveNamedRequest) (*model.ProductModel, error) {
	name, err := utils.TrimAndValidate(req.Name, 255)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &model.ProductModel{ID: req.ID, Name: name, CreatedAt: now, UpdatedAt: now}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := s.refRepo.SaveProduct(product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	s.audit(ctx, "save", "product", product.ID)
	return product, nil
}

func (s *referenceService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.refRepo.DeleteProduct(id); err != nil {
		return err
	}
	s.audit(ctx, "delete", "product", id)
	return nil
}

func (s *referenceService) ListLinks() ([]*model.LinkModel, error) {
	return s.refRepo.ListLinks()
}

func (s *referenceService) SaveLink(ctx context.Context, req *SaveLinkRequest) (*model.LinkModel, error) {
	name, err := utils.TrimAndValidate(req.Name, 255)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	link := &model.LinkModel{
		ID:          req.ID,
		Name:        name,
		URL:         req.URL,
		Description: utils.SanitizeString(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	if err := s.refRepo.SaveLink(link); err != nil {
		return nil, fmt.Errorf("failed to save link: %w", err)
	}
	s.audit(ctx, "save", "link", link.ID)
	return link, nil
}

func (s *referenceService) DeleteLink(ctx context.Context, id string) error {
	if err := s.refRepo.DeleteLink(id); err != nil {
		return err
	}
	s.audit(ctx, "delete", "link", id)
	return nil
}

func (s *referenceService) ListWeeklyTargets(filter *repository.WeeklyTargetFilter) ([]*model.WeeklyTargetModel, error) {
	return s.refRepo.ListWeeklyTargets(filter)
}

func (s *referenceService) SaveWeeklyTarget(ctx context.Context, req *SaveWeeklyTargetRequest) (*model.WeeklyTargetModel, error) {
	weekStart, err := workflow.WeekStartOf(req.WeekStart)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	target := &model.WeeklyTargetModel{
		ID:        req.ID,
		ProductID: req.ProductID,
		LayerID:   req.LayerID,
		WeekStart: weekStart,
		Amount:    req.Amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if target.ID == "" {
		target.ID = uuid.New().String()
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	if err := s.refRepo.SaveWeeklyTarget(target); err != nil {
		return nil, fmt.Errorf("failed to save weekly target: %w", err)
	}
	s.audit(ctx, "save", "weekly_target", target.ID)
	return target, nil
}

func (s *referenceService) DeleteWeeklyTarget(ctx context.Context, id string) error {
	if err := s.refRepo.DeleteWeeklyTarget(id); err != nil {
		return err
	}
	s.audit(ctx, "delete", "weekly_target", id)
	return nil
}

// audit 记录参考数据管理操作
func (s *referenceService) audit(ctx context.Context, action string, resourceType string, id string) {
	if s.auditLogSvc == nil {
		return
	}
	operator := getUserIDFromContext(ctx)
	if operator == "" {
		return
	}
	_ = s.auditLogSvc.RecordAction(ctx, operator, action, resourceType, id, nil)
}
