package api

import (
	"net/http"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// ReferenceController 参考数据控制器
// 图层/备注/产品/链接/周目标的增删查接口
type ReferenceController struct {
	refService service.ReferenceService
}

// NewReferenceController 创建参考数据控制器
func NewReferenceController(refService service.ReferenceService) *ReferenceController {
	return &ReferenceController{
		refService: refService,
	}
}

// ListLayers 列出图层
func (c *ReferenceController) ListLayers(ctx *gin.Context) {
	layers, err := c.refService.ListLayers()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list layers", err.Error())
		return
	}
	Success(ctx, layers)
}

// SaveLayer 保存图层
func (c *ReferenceController) SaveLayer(ctx *gin.Context) {
	var req service.SaveNamedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	layer, err := c.refService.SaveLayer(requestContext(ctx), &req)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "failed to save layer", err.Error())
		return
	}
	Success(ctx, layer)
}

// DeleteLayer 删除图层
func (c *ReferenceController) DeleteLayer(ctx *gin.Context) {
	if err := c.refService.DeleteLayer(requestContext(ctx), ctx.Param("id")); err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to delete layer", err.Error())
		return
	}
	Success(ctx, nil)
}

// ListRemarks 列出备注
func (c *ReferenceController) ListRemarks(ctx *gin.Context) {
	remarks, err := c.refService.ListRemarks()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list remarks", err.Error())
		return
	}
	Success(ctx, remarks)
}

// SaveRemark 保存备注
func (c *ReferenceController) SaveRemark(ctx *gin.Context) {
	var req service.SaveNamedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	remark, err := c.refService.SaveRemark(requestContext(ctx), &req)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "failed to save remark", err.Error())
		return
	}
	Success(ctx, remark)
}

// DeleteRemark 删除备注
func (c *ReferenceController) DeleteRemark(ctx *gin.Context) {
	if err := c.refService.DeleteRemark(requestContext(ctx), ctx.Param("id")); err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to delete remark", err.Error())
		return
	}
	Success(ctx, nil)
}

// ListProducts 列出产品
func (c *ReferenceController) ListProducts(ctx *gin.Context) {
	products, err := c.refService.ListProducts()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list products", err.Error())
		return
	}
	Success(ctx, products)
}

// SaveProduct 保存产品
func (c *ReferenceController) SaveProduct(ctx *gin.Context) {
	var req service.SaveNamedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	product, err := c.refService.SaveProduct(requestContext(ctx), &req)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "failed to save product", err.Error())
		return
	}
	Success(ctx, product)
}

// DeleteProduct 删除产品
func (c *ReferenceController) DeleteProduct(ctx *gin.Context) {
	if err := c.refService.DeleteProduct(requestContext(ctx), ctx.Param("id")); err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to delete product", err.Error())
		return
	}
	Success(ctx, nil)
}

// ListLinks 列出常用链接
func (c *ReferenceController) ListLinks(ctx *gin.Context) {
	links, err := c.refService.ListLinks()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list links", err.Error())
		return
	}
	Success(ctx, links)
}

// SaveLink 保存链接
func (c *ReferenceController) SaveLink(ctx *gin.Context) {
	var req service.SaveLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	link, err := c.refService.SaveLink(requestContext(ctx), &req)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "failed to save link", err.Error())
		return
	}
	Success(ctx, link)
}

// DeleteLink 删除链接
func (c *ReferenceController) DeleteLink(ctx *gin.Context) {
	if err := c.refService.DeleteLink(requestContext(ctx), ctx.Param("id")); err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to delete link", err.Error())
		return
	}
	Success(ctx, nil)
}

// ListWeeklyTargets 列出周目标
func (c *ReferenceController) ListWeeklyTargets(ctx *gin.Context) {
	filter := &repository.WeeklyTargetFilter{}
	if v := ctx.Query("product_id"); v != "" {
		filter.ProductID = &v
	}
	if v := ctx.Query("layer_id"); v != "" {
		filter.LayerID = &v
	}
	if v := ctx.Query("week_start"); v != "" {
		filter.WeekStart = &v
	}

	targets, err := c.refService.ListWeeklyTargets(filter)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list weekly targets", err.Error())
		return
	}
	Success(ctx, targets)
}

// SaveWeeklyTarget 保存周目标
func (c *ReferenceController) SaveWeeklyTarget(ctx *gin.Context) {
	var req service.SaveWeeklyTargetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	target, err := c.refService.SaveWeeklyTarget(requestContext(ctx), &req)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "failed to save weekly target", err.Error())
		return
	}
	Success(ctx, target)
}

// DeleteWeeklyTarget 删除周目标
func (c *ReferenceController) DeleteWeeklyTarget(ctx *gin.Context) {
	if err := c.refService.DeleteWeeklyTarget(requestContext(ctx), ctx.Param("id")); err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to delete weekly target", err.Error())
		return
	}
	Success(ctx, nil)
}
