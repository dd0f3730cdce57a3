package api

import (
	"net/http"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// FormController 表单控制器
type FormController struct {
	formService service.FormService
}

// NewFormController 创建表单控制器
func NewFormController(formService service.FormService) *FormController {
	return &FormController{
		formService: formService,
	}
}

// handleFormError 把服务层错误映射为 HTTP 响应
func (c *FormController) handleFormError(ctx *gin.Context, err error, operation string) {
	code, message := TranslateDomainError(err, "failed to "+operation)
	Error(ctx, code, message, err.Error())
}

// GetByUserAndDate 获取某员工某生产日期的表单
// 不存在时返回按用户默认值初始化的空白表单
func (c *FormController) GetByUserAndDate(ctx *gin.Context) {
	taqniaID := ctx.Param("taqnia_id")
	date := ctx.Param("date")

	if err := utils.ValidateEntityID(taqniaID); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid taqnia ID", err.Error())
		return
	}
	if err := utils.ValidateDate(date); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	form, err := c.formService.LoadOrInit(taqniaID, date)
	if err != nil {
		c.handleFormError(ctx, err, "load form")
		return
	}

	Success(ctx, form)
}

// Get 获取表单详情
func (c *FormController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateEntityID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid form ID", err.Error())
		return
	}

	form, err := c.formService.Get(id)
	if err != nil {
		c.handleFormError(ctx, err, "load form")
		return
	}

	Success(ctx, form)
}

// List 按过滤条件查询表单
func (c *FormController) List(ctx *gin.Context) {
	filter := &repository.FormFilter{}
	if v := ctx.Query("state"); v != "" {
		filter.State = &v
	}
	if v := ctx.Query("taqnia_id"); v != "" {
		filter.TaqniaID = &v
	}
	if v := ctx.Query("supervisor_id"); v != "" {
		filter.SupervisorID = &v
	}
	if v := ctx.Query("date"); v != "" {
		filter.Date = &v
	}
	if v := ctx.Query("product_id"); v != "" {
		filter.ProductID = &v
	}
	if v := ctx.Query("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := ctx.Query("end_date"); v != "" {
		filter.EndDate = &v
	}

	forms, err := c.formService.List(filter)
	if err != nil {
		c.handleFormError(ctx, err, "list forms")
		return
	}

	Success(ctx, forms)
}

// Save 保存表单草稿
func (c *FormController) Save(ctx *gin.Context) {
	var req service.SaveFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := utils.ValidateDate(req.ProductivityDate); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	form, err := c.formService.Save(requestContext(ctx), &req)
	if err != nil {
		c.handleFormError(ctx, err, "save form")
		return
	}

	Success(ctx, form)
}

// Submit 提交表单进入审批
func (c *FormController) Submit(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateEntityID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid form ID", err.Error())
		return
	}

	form, err := c.formService.Submit(requestContext(ctx), id)
	if err != nil {
		c.handleFormError(ctx, err, "submit form")
		return
	}

	Success(ctx, form)
}

// Delete 删除表单
func (c *FormController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateEntityID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid form ID", err.Error())
		return
	}

	if err := c.formService.Delete(requestContext(ctx), id); err != nil {
		c.handleFormError(ctx, err, "delete form")
		return
	}

	Success(ctx, nil)
}

// History 查询表单状态变更历史
func (c *FormController) History(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateEntityID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid form ID", err.Error())
		return
	}

	histories, err := c.formService.History(id)
	if err != nil {
		c.handleFormError(ctx, err, "load form history")
		return
	}

	Success(ctx, histories)
}
