package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/metrics"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/utils"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/workflow"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 表单服务错误定义
var (
	ErrFormNotEditable    = errors.New("form is approved and can no longer be edited")
	ErrVersionConflict    = errors.New("form was modified by another request, reload and retry")
	ErrSheetNotSelectable = errors.New("sheet is not selectable for the user's production role")
	ErrNoDeltaSelected    = errors.New("selected completion must be greater than current completion")
	ErrMissingSelection   = errors.New("selected completion is required for non-QC targets")
)

// FormService 表单服务接口
type FormService interface {
	// LoadOrInit 加载某员工某生产日期的表单;不存在时返回按用户默认值初始化的空表单 (不落库)
	LoadOrInit(taqniaID string, date string) (*model.FormModel, error)
	Get(id string) (*model.FormModel, error)
	Save(ctx context.Context, req *SaveFormRequest) (*model.FormModel, error)
	Submit(ctx context.Context, id string) (*model.FormModel, error)
	Delete(ctx context.Context, id string) error
	History(formID string) ([]*model.StateHistoryModel, error)
	List(filter *repository.FormFilter) ([]*model.FormModel, error)
}

// SaveFormRequest 保存表单请求
type SaveFormRequest struct {
	FormID           string              `json:"form_id"`                                // 为空时按 (员工, 日期) 创建或定位
	TaqniaID         string              `json:"taqnia_id" binding:"required"`           // 员工工号
	ProductivityDate string              `json:"productivity_date" binding:"required"`   // 生产日期 YYYY-MM-DD
	ProductID        string              `json:"product_id"`                             // 产品,为空时取用户默认产品
	Comment          string              `json:"comment"`                                // 员工备注
	Version          int                 `json:"version"`                                // 乐观锁版本号,更新已有表单时必填
	Targets          []SaveTargetRequest `json:"targets"`                                // 每日目标列表
}

// SaveTargetRequest 保存每日目标请求
type SaveTargetRequest struct {
	ID                 string   `json:"id"`                                  // 已有目标行的 ID,新增时为空
	SheetStatusID      string   `json:"sheet_status_id" binding:"required"`  // 图幅状态引用
	LayerID            string   `json:"layer_id"`                            // 图层,为空时取图幅状态的图层
	RemarkID           string   `json:"remark_id"`                           // 备注,非 QC 目标提交前必填
	SelectedCompletion *float64 `json:"selected_completion"`                 // 选定完成度,非 QC 目标必填
}

// formService 表单服务实现
type formService struct {
	formRepo    repository.FormRepository
	userRepo    repository.UserRepository
	sheetRepo   repository.SheetStatusRepository
	historyRepo repository.StateHistoryRepository
	auditLogSvc AuditLogService
	notifier    Notifier
}

// NewFormService 创建表单服务
func NewFormService(
	formRepo repository.FormRepository,
	userRepo repository.UserRepository,
	sheetRepo repository.SheetStatusRepository,
	historyRepo repository.StateHistoryRepository,
	auditLogSvc AuditLogService,
	notifier Notifier,
) FormService {
	return &formService{
		formRepo:    formRepo,
		userRepo:    userRepo,
		sheetRepo:   sheetRepo,
		historyRepo: historyRepo,
		auditLogSvc: auditLogSvc,
		notifier:    notifier,
	}
}

// LoadOrInit 加载或初始化表单
// 找不到已有表单时不报 404,而是返回一份按用户默认值预填的空白表单,
// 前端据此直接渲染编辑界面
func (s *formService) LoadOrInit(taqniaID string, date string) (*model.FormModel, error) {
	form, err := s.formRepo.FindByUserAndDate(taqniaID, date)
	if err == nil {
		return form, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.userRepo.FindByTaqniaID(taqniaID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", taqniaID, err)
	}

	now := time.Now()
	return &model.FormModel{
		ID:               uuid.New().String(),
		TaqniaID:         user.TaqniaID,
		ProductivityDate: date,
		ProductID:        user.ProductID,
		SupervisorID:     user.SupervisorID,
		State:            string(workflow.StateNew),
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
		Targets:          []model.DailyTargetModel{},
		Approvals:        []model.ApprovalModel{},
	}, nil
}

// Get 获取表单详情
func (s *formService) Get(id string) (*model.FormModel, error) {
	return s.formRepo.FindByID(id)
}

// List 按过滤条件查询表单
func (s *formService) List(filter *repository.FormFilter) ([]*model.FormModel, error) {
	return s.formRepo.FindByFilter(filter)
}

// Save 保存表单草稿
// 草稿阶段只做轻量校验 (日期格式、图幅可选性、版本号),目标行允许不完整,
// 完整性校验推迟到 Submit。生产力始终由服务端计算: 非 QC 目标取
// 选定完成度 − 当前完成度,QC 目标固定记 1.0;客户端给出的生产力数值一律不信任
func (s *formService) Save(ctx context.Context, req *SaveFormRequest) (*model.FormModel, error) {
	if err := utils.ValidateDate(req.ProductivityDate); err != nil {
		return nil, fmt.Errorf("invalid productivity date: %w", err)
	}

	user, err := s.userRepo.FindByTaqniaID(req.TaqniaID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", req.TaqniaID, err)
	}

	form, err := s.locateForm(req, user)
	if err != nil {
		return nil, err
	}

	state, err := workflow.ParseState(form.State)
	if err != nil {
		return nil, err
	}
	if !workflow.IsEditable(state) {
		return nil, ErrFormNotEditable
	}

	targets, err := s.buildTargets(form.ID, user, req.Targets)
	if err != nil {
		return nil, err
	}

	if req.ProductID != "" {
		form.ProductID = req.ProductID
	}
	if form.ProductID == "" {
		form.ProductID = user.ProductID
	}
	if form.SupervisorID == "" {
		form.SupervisorID = user.SupervisorID
	}
	form.Comment = utils.SanitizeString(req.Comment)
	form.Targets = targets
	form.Version++
	form.UpdatedAt = time.Now()

	if err := s.formRepo.Save(form); err != nil {
		return nil, fmt.Errorf("failed to save form: %w", err)
	}

	if s.auditLogSvc != nil {
		userID := getUserIDFromContext(ctx)
		if userID != "" {
			details := fmt.Sprintf(`{"form_id":"%s","date":"%s","targets":%d}`, form.ID, form.ProductivityDate, len(form.Targets))
			_ = s.auditLogSvc.RecordAction(ctx, userID, "save", "form", form.ID, details)
		}
	}

	return form, nil
}

// locateForm 定位待更新的表单,或构造一份新表单
// 已有表单的更新必须携带当前版本号,版本不一致说明并发修改,拒绝覆盖
func (s *formService) locateForm(req *SaveFormRequest, user *model.UserModel) (*model.FormModel, error) {
	var form *model.FormModel
	var err error

	if req.FormID != "" {
		form, err = s.formRepo.FindByID(req.FormID)
	} else {
		form, err = s.formRepo.FindByUserAndDate(req.TaqniaID, req.ProductivityDate)
	}

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		now := time.Now()
		return &model.FormModel{
			ID:               uuid.New().String(),
			TaqniaID:         user.TaqniaID,
			ProductivityDate: req.ProductivityDate,
			SupervisorID:     user.SupervisorID,
			State:            string(workflow.StateNew),
			Version:          0, // Save 时递增为 1
			CreatedAt:        now,
		}, nil
	}

	if form.TaqniaID != req.TaqniaID {
		return nil, fmt.Errorf("form %s does not belong to user %s", form.ID, req.TaqniaID)
	}
	if req.Version != form.Version {
		return nil, ErrVersionConflict
	}
	return form, nil
}

// buildTargets 根据请求构建目标行,并由服务端计算生产力
func (s *formService) buildTargets(formID string, user *model.UserModel, reqs []SaveTargetRequest) ([]model.DailyTargetModel, error) {
	role := workflow.ProductionRole(user.ProductionRole)
	targets := make([]model.DailyTargetModel, 0, len(reqs))

	for _, tr := range reqs {
		status, err := s.sheetRepo.FindByID(tr.SheetStatusID)
		if err != nil {
			return nil, fmt.Errorf("failed to load sheet status %s: %w", tr.SheetStatusID, err)
		}
		if !workflow.SelectableForRole(role, status.Completion) {
			return nil, fmt.Errorf("%w: sheet %s completion %.2f", ErrSheetNotSelectable, status.SheetNumber, status.Completion)
		}

		layerID := tr.LayerID
		if layerID == "" {
			layerID = status.LayerID
		}

		target := model.DailyTargetModel{
			ID:            tr.ID,
			FormID:        formID,
			SheetStatusID: tr.SheetStatusID,
			LayerID:       layerID,
			RemarkID:      tr.RemarkID,
			IsQC:          role.IsQC(),
			CreatedAt:     time.Now(),
		}
		if target.ID == "" {
			target.ID = uuid.New().String()
		}

		if role.IsQC() {
			target.Productivity = workflow.QCProductivity
		} else {
			if tr.SelectedCompletion == nil {
				return nil, ErrMissingSelection
			}
			delta := workflow.ProductivityDelta(status.Completion, *tr.SelectedCompletion)
			if delta <= 0 {
				return nil, fmt.Errorf("%w: sheet %s", ErrNoDeltaSelected, status.SheetNumber)
			}
			target.Productivity = delta
		}

		targets = append(targets, target)
	}

	return targets, nil
}

// Submit 提交表单进入审批流程
func (s *formService) Submit(ctx context.Context, id string) (*model.FormModel, error) {
	form, err := s.formRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := workflow.ValidateForm(form); err != nil {
		return nil, err
	}

	state, err := workflow.ParseState(form.State)
	if err != nil {
		return nil, err
	}

	// 待审批状态下的重复提交视为覆盖: 重新盖章提交时间并复位审批记录,
	// 不走状态迁移也不追加历史
	newState := state
	if state != workflow.StatePending {
		newState, err = workflow.Transition(state, workflow.StatePending)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	form.State = string(newState)
	form.SubmissionDate = &now
	form.Version++
	form.UpdatedAt = now

	// 提交时建立或复位审批记录,重新提交会复用已有记录
	if len(form.Approvals) == 0 {
		form.Approvals = append(form.Approvals, model.ApprovalModel{
			ID:           uuid.New().String(),
			FormID:       form.ID,
			State:        string(workflow.StatePending),
			SupervisorID: form.SupervisorID,
			CreatedAt:    now,
		})
	} else {
		approval := &form.Approvals[len(form.Approvals)-1]
		approval.State = string(workflow.StatePending)
		approval.ReviewedAt = nil
		approval.UpdatedAt = now
	}

	if err := s.formRepo.Save(form); err != nil {
		return nil, fmt.Errorf("failed to submit form: %w", err)
	}

	if state != newState {
		_ = s.historyRepo.Save(&model.StateHistoryModel{
			ID:        uuid.New().String(),
			FormID:    form.ID,
			FromState: string(state),
			ToState:   form.State,
			Operator:  form.TaqniaID,
			CreatedAt: now,
		})
	}

	metrics.RecordFormSubmitted()

	if s.notifier != nil {
		if event, err := newFormEvent(EventFormSubmitted, form, ""); err == nil {
			s.notifier.Dispatch(event)
		}
	}

	if s.auditLogSvc != nil {
		userID := getUserIDFromContext(ctx)
		if userID != "" {
			details := fmt.Sprintf(`{"form_id":"%s","date":"%s"}`, form.ID, form.ProductivityDate)
			_ = s.auditLogSvc.RecordAction(ctx, userID, "submit", "form", form.ID, details)
		}
	}

	return form, nil
}

// Delete 删除表单,已审批通过的表单不允许删除
func (s *formService) Delete(ctx context.Context, id string) error {
	form, err := s.formRepo.FindByID(id)
	if err != nil {
		return err
	}
	if form.State == string(workflow.StateApproved) {
		return ErrFormNotEditable
	}

	if err := s.formRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete form: %w", err)
	}

	if s.auditLogSvc != nil {
		userID := getUserIDFromContext(ctx)
		if userID != "" {
			details := fmt.Sprintf(`{"form_id":"%s","date":"%s"}`, form.ID, form.ProductivityDate)
			_ = s.auditLogSvc.RecordAction(ctx, userID, "delete", "form", form.ID, details)
		}
	}

	return nil
}

// History 查询表单状态变更历史
func (s *formService) History(formID string) ([]*model.StateHistoryModel, error) {
	return s.historyRepo.FindByFormID(formID)
}
