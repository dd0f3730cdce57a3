package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/metrics"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/workflow"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotPending 表单不在待审批状态
var ErrNotPending = errors.New("form is not pending review")

// ApprovalService 审批服务接口
type ApprovalService interface {
	// ListPending 查询主管名下待审批的表单,date 为空时不限日期
	ListPending(supervisorID string, date *string) ([]*model.FormModel, error)
	Review(ctx context.Context, req *ReviewRequest) (*model.FormModel, error)
}

// ReviewRequest 审批请求
type ReviewRequest struct {
	FormID   string `json:"form_id" binding:"required"` // 表单 ID
	Approved *bool  `json:"approved" binding:"required"` // true 通过 / false 驳回
	Comment  string `json:"comment"`                    // 审批意见,驳回时建议填写
}

// approvalService 审批服务实现
type approvalService struct {
	db          *gorm.DB
	formRepo    repository.FormRepository
	sheetRepo   repository.SheetStatusRepository
	historyRepo repository.StateHistoryRepository
	auditLogSvc AuditLogService
	notifier    Notifier
}

// NewApprovalService 创建审批服务
func NewApprovalService(
	db *gorm.DB,
	formRepo repository.FormRepository,
	sheetRepo repository.SheetStatusRepository,
	historyRepo repository.StateHistoryRepository,
	auditLogSvc AuditLogService,
	notifier Notifier,
) ApprovalService {
	return &approvalService{
		db:          db,
		formRepo:    formRepo,
		sheetRepo:   sheetRepo,
		historyRepo: historyRepo,
		auditLogSvc: auditLogSvc,
		notifier:    notifier,
	}
}

// ListPending 查询待审批表单
func (s *approvalService) ListPending(supervisorID string, date *string) ([]*model.FormModel, error) {
	pending := string(workflow.StatePending)
	filter := &repository.FormFilter{
		State:        &pending,
		SupervisorID: &supervisorID,
		Date:         date,
	}
	return s.formRepo.FindByFilter(filter)
}

// Review 审批表单
// 通过时在同一事务内把每条目标的生产力增量累加到对应图幅的完成度上,
// 表单状态与图幅完成度要么一起生效要么一起回滚
func (s *approvalService) Review(ctx context.Context, req *ReviewRequest) (*model.FormModel, error) {
	approved := req.Approved != nil && *req.Approved
	reviewer := getUserIDFromContext(ctx)

	var form model.FormModel
	var fromState workflow.FormState

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Targets").Preload("Approvals").
			Where("id = ?", req.FormID).First(&form).Error; err != nil {
			return err
		}

		state, err := workflow.ParseState(form.State)
		if err != nil {
			return err
		}
		if state != workflow.StatePending {
			return ErrNotPending
		}
		fromState = state

		target := workflow.StateRejected
		if approved {
			target = workflow.StateApproved
		}
		newState, err := workflow.Transition(state, target)
		if err != nil {
			return err
		}

		now := time.Now()
		form.State = string(newState)
		form.Version++
		form.UpdatedAt = now

		if len(form.Approvals) > 0 {
			approval := &form.Approvals[len(form.Approvals)-1]
			approval.State = form.State
			approval.SupervisorID = reviewer
			approval.Comment = req.Comment
			approval.ReviewedAt = &now
			approval.UpdatedAt = now
		}

		if approved {
			for _, t := range form.Targets {
				if err := s.sheetRepo.ApplyDelta(tx, t.SheetStatusID, t.Productivity); err != nil {
					return fmt.Errorf("failed to update sheet completion: %w", err)
				}
			}
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&form).Error
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	_ = s.historyRepo.Save(&model.StateHistoryModel{
		ID:        uuid.New().String(),
		FormID:    form.ID,
		FromState: string(fromState),
		ToState:   form.State,
		Reason:    req.Comment,
		Operator:  reviewer,
		CreatedAt: now,
	})

	if approved {
		metrics.RecordReview("approved")
	} else {
		metrics.RecordReview("rejected")
	}

	if s.notifier != nil {
		if event, err := newFormEvent(EventFormReviewed, &form, req.Comment); err == nil {
			s.notifier.Dispatch(event)
		}
	}

	if s.auditLogSvc != nil && reviewer != "" {
		action := "reject"
		if approved {
			action = "approve"
		}
		details := fmt.Sprintf(`{"form_id":"%s","comment":"%s"}`, form.ID, req.Comment)
		_ = s.auditLogSvc.RecordAction(ctx, reviewer, action, "form", form.ID, details)
	}

	return &form, nil
}
