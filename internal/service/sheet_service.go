package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/workflow"
	"github.com/google/uuid"
)

// SheetService 图幅状态服务接口
type SheetService interface {
	// Search 搜索图幅状态,并按查询者的生产角色标注每条是否可选
	Search(filter *repository.SheetStatusFilter, productionRole string) ([]*SheetStatusView, error)
	Get(id string) (*model.SheetLayerStatusModel, error)
	Save(ctx context.Context, req *SaveSheetStatusRequest) (*model.SheetLayerStatusModel, error)
}

// SheetStatusView 图幅状态视图
// Selectable 表示该图幅对查询者的生产角色是否可登记
type SheetStatusView struct {
	model.SheetLayerStatusModel
	Selectable bool `json:"selectable"`
}

// SaveSheetStatusRequest 保存图幅状态请求 (管理端)
type SaveSheetStatusRequest struct {
	ID          string  `json:"id"`                               // 为空时新建
	SheetNumber string  `json:"sheet_number" binding:"required"`  // 图幅号
	LayerID     string  `json:"layer_id" binding:"required"`      // 图层
	ProductID   string  `json:"product_id" binding:"required"`    // 产品
	Completion  float64 `json:"completion"`                       // 初始完成度 (0-1)
}

// sheetService 图幅状态服务实现
type sheetService struct {
	sheetRepo   repository.SheetStatusRepository
	auditLogSvc AuditLogService
}

// NewSheetService 创建图幅状态服务
func NewSheetService(sheetRepo repository.SheetStatusRepository, auditLogSvc AuditLogService) SheetService {
	return &sheetService{
		sheetRepo:   sheetRepo,
		auditLogSvc: auditLogSvc,
	}
}

// Search 搜索图幅状态
func (s *sheetService) Search(filter *repository.SheetStatusFilter, productionRole string) ([]*SheetStatusView, error) {
	statuses, err := s.sheetRepo.Search(filter)
	if err != nil {
		return nil, err
	}

	role := workflow.ProductionRole(productionRole)
	views := make([]*SheetStatusView, 0, len(statuses))
	for _, status := range statuses {
		views = append(views, &SheetStatusView{
			SheetLayerStatusModel: *status,
			Selectable:            workflow.SelectableForRole(role, status.Completion),
		})
	}
	return views, nil
}

// Get 获取图幅状态
func (s *sheetService) Get(id string) (*model.SheetLayerStatusModel, error) {
	return s.sheetRepo.FindByID(id)
}

// Save 保存图幅状态
func (s *sheetService) Save(ctx context.Context, req *SaveSheetStatusRequest) (*model.SheetLayerStatusModel, error) {
	status := &model.SheetLayerStatusModel{
		ID:          req.ID,
		SheetNumber: req.SheetNumber,
		LayerID:     req.LayerID,
		ProductID:   req.ProductID,
		Completion:  workflow.Round2(req.Completion),
		UpdatedAt:   time.Now(),
	}
	if status.ID == "" {
		status.ID = uuid.New().String()
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	if err := s.sheetRepo.Save(status); err != nil {
		return nil, fmt.Errorf("failed to save sheet status: %w", err)
	}

	if s.auditLogSvc != nil {
		userID := getUserIDFromContext(ctx)
		if userID != "" {
			details := fmt.Sprintf(`{"sheet_number":"%s","layer_id":"%s"}`, status.SheetNumber, status.LayerID)
			_ = s.auditLogSvc.RecordAction(ctx, userID, "save", "sheet_status", status.ID, details)
		}
	}

	return status, nil
}
