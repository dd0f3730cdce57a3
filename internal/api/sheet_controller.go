package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SheetController 图幅状态控制器
type SheetController struct {
	sheetService service.SheetService
}

// NewSheetController 创建图幅状态控制器
func NewSheetController(sheetService service.SheetService) *SheetController {
	return &SheetController{
		sheetService: sheetService,
	}
}

// Search 搜索图幅状态
// 结果按当前用户的生产角色标注每条是否可选
func (c *SheetController) Search(ctx *gin.Context) {
	filter := &repository.SheetStatusFilter{}
	if v := ctx.Query("sheet_number"); v != "" {
		filter.SheetNumber = &v
	}
	if v := ctx.Query("layer_id"); v != "" {
		filter.LayerID = &v
	}
	if v := ctx.Query("product_id"); v != "" {
		filter.ProductID = &v
	}
	if v := ctx.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			Error(ctx, http.StatusBadRequest, "invalid limit", v)
			return
		}
		filter.Limit = limit
	}

	views, err := c.sheetService.Search(filter, ctx.GetString("production_role"))
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to search sheet status", err.Error())
		return
	}

	Success(ctx, views)
}

// Get 获取图幅状态
func (c *SheetController) Get(ctx *gin.Context) {
	status, err := c.sheetService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Error(ctx, http.StatusNotFound, "sheet status not found", err.Error())
			return
		}
		Error(ctx, http.StatusInternalServerError, "failed to load sheet status", err.Error())
		return
	}

	Success(ctx, status)
}

// Save 保存图幅状态 (管理端)
func (c *SheetController) Save(ctx *gin.Context) {
	var req service.SaveSheetStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	status, err := c.sheetService.Save(requestContext(ctx), &req)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "failed to save sheet status", err.Error())
		return
	}

	Success(ctx, status)
}
