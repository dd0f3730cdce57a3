package api

import (
	"net/http"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// DashboardController 仪表盘控制器
type DashboardController struct {
	dashboardService service.DashboardService
}

// NewDashboardController 创建仪表盘控制器
func NewDashboardController(dashboardService service.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// Daily 日汇总
func (c *DashboardController) Daily(ctx *gin.Context) {
	date := ctx.Query("date")
	if err := utils.ValidateDate(date); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	var supervisorID *string
	if v := ctx.Query("supervisor_id"); v != "" {
		supervisorID = &v
	}

	summary, err := c.dashboardService.DailySummary(date, supervisorID)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to build daily summary", err.Error())
		return
	}

	Success(ctx, summary)
}

// Weekly 周汇总
func (c *DashboardController) Weekly(ctx *gin.Context) {
	date := ctx.Query("date")
	if err := utils.ValidateDate(date); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	var productID *string
	if v := ctx.Query("product_id"); v != "" {
		productID = &v
	}

	summary, err := c.dashboardService.WeeklySummary(date, productID)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to build weekly summary", err.Error())
		return
	}

	Success(ctx, summary)
}

// Project 项目进度汇总
func (c *DashboardController) Project(ctx *gin.Context) {
	productID := ctx.Query("product_id")
	if productID == "" {
		Error(ctx, http.StatusBadRequest, "product_id is required", "")
		return
	}

	summary, err := c.dashboardService.ProjectSummary(productID)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to build project summary", err.Error())
		return
	}

	Success(ctx, summary)
}

// Editors 编辑员产出统计
func (c *DashboardController) Editors(ctx *gin.Context) {
	startDate := ctx.Query("start_date")
	endDate := ctx.Query("end_date")
	if err := utils.ValidateDate(startDate); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid start date", err.Error())
		return
	}
	if err := utils.ValidateDate(endDate); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid end date", err.Error())
		return
	}

	var supervisorID *string
	if v := ctx.Query("supervisor_id"); v != "" {
		supervisorID = &v
	}

	perf, err := c.dashboardService.EditorPerformance(startDate, endDate, supervisorID)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to build editor performance", err.Error())
		return
	}

	Success(ctx, perf)
}
