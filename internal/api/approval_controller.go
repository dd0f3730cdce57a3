package api

import (
	"net/http"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// ApprovalController 审批控制器
type ApprovalController struct {
	approvalService service.ApprovalService
}

// NewApprovalController 创建审批控制器
func NewApprovalController(approvalService service.ApprovalService) *ApprovalController {
	return &ApprovalController{
		approvalService: approvalService,
	}
}

// ListPending 查询当前主管名下待审批的表单
func (c *ApprovalController) ListPending(ctx *gin.Context) {
	supervisorID := ctx.GetString("taqnia_id")
	if supervisorID == "" {
		Error(ctx, http.StatusUnauthorized, "unauthorized", "missing user identity")
		return
	}

	var date *string
	if v := ctx.Query("date"); v != "" {
		if err := utils.ValidateDate(v); err != nil {
			Error(ctx, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
		date = &v
	}

	forms, err := c.approvalService.ListPending(supervisorID, date)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list pending forms", err.Error())
		return
	}

	Success(ctx, forms)
}

// Update 审批表单 (通过或驳回)
func (c *ApprovalController) Update(ctx *gin.Context) {
	var req service.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	form, err := c.approvalService.Review(requestContext(ctx), &req)
	if err != nil {
		code, message := TranslateDomainError(err, "failed to review form")
		Error(ctx, code, message, err.Error())
		return
	}

	Success(ctx, form)
}
