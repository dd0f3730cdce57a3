package api

import (
	"errors"
	"net/http"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserController 用户管理控制器
type UserController struct {
	userService service.UserService
}

// NewUserController 创建用户管理控制器
func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// Create 创建用户
func (c *UserController) Create(ctx *gin.Context) {
	var req service.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	user, err := c.userService.Create(requestContext(ctx), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			Error(ctx, http.StatusConflict, "user already exists", err.Error())
		case errors.Is(err, service.ErrInvalidRole), errors.Is(err, service.ErrInvalidProduction):
			Error(ctx, http.StatusBadRequest, "invalid role", err.Error())
		default:
			Error(ctx, http.StatusInternalServerError, "failed to create user", err.Error())
		}
		return
	}

	Success(ctx, user)
}

// Update 更新用户
func (c *UserController) Update(ctx *gin.Context) {
	taqniaID := ctx.Param("taqnia_id")
	if err := utils.ValidateEntityID(taqniaID); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid taqnia ID", err.Error())
		return
	}

	var req service.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	user, err := c.userService.Update(requestContext(ctx), taqniaID, &req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			Error(ctx, http.StatusNotFound, "user not found", err.Error())
		case errors.Is(err, service.ErrInvalidRole), errors.Is(err, service.ErrInvalidProduction):
			Error(ctx, http.StatusBadRequest, "invalid role", err.Error())
		default:
			Error(ctx, http.StatusInternalServerError, "failed to update user", err.Error())
		}
		return
	}

	Success(ctx, user)
}

// Get 获取用户详情
func (c *UserController) Get(ctx *gin.Context) {
	taqniaID := ctx.Param("taqnia_id")
	if err := utils.ValidateEntityID(taqniaID); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid taqnia ID", err.Error())
		return
	}

	user, err := c.userService.Get(taqniaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Error(ctx, http.StatusNotFound, "user not found", err.Error())
			return
		}
		Error(ctx, http.StatusInternalServerError, "failed to load user", err.Error())
		return
	}

	Success(ctx, user)
}

// List 列出用户
// 带 supervisor_id 参数时只返回该主管名下的编辑员
func (c *UserController) List(ctx *gin.Context) {
	if supervisorID := ctx.Query("supervisor_id"); supervisorID != "" {
		users, err := c.userService.ListBySupervisor(supervisorID)
		if err != nil {
			Error(ctx, http.StatusInternalServerError, "failed to list users", err.Error())
			return
		}
		Success(ctx, users)
		return
	}

	users, err := c.userService.List()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list users", err.Error())
		return
	}

	Success(ctx, users)
}

// Delete 删除用户
func (c *UserController) Delete(ctx *gin.Context) {
	taqniaID := ctx.Param("taqnia_id")
	if err := utils.ValidateEntityID(taqniaID); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid taqnia ID", err.Error())
		return
	}

	if err := c.userService.Delete(requestContext(ctx), taqniaID); err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to delete user", err.Error())
		return
	}

	Success(ctx, nil)
}
