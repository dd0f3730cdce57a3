package api

import (
	"errors"
	"net/http"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/auth"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthController 认证控制器
type AuthController struct {
	authService service.AuthService
}

// NewAuthController 创建认证控制器
func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login 工号加密码登录
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			Error(ctx, http.StatusUnauthorized, "invalid credentials", "")
			return
		}
		Error(ctx, http.StatusInternalServerError, "login failed", err.Error())
		return
	}

	Success(ctx, result)
}

// VerifyOTP 校验 OTP 验证码
func (c *AuthController) VerifyOTP(ctx *gin.Context) {
	var req service.VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	result, err := c.authService.VerifyOTP(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrOTPNotFound),
			errors.Is(err, auth.ErrOTPExpired),
			errors.Is(err, auth.ErrOTPMismatch),
			errors.Is(err, auth.ErrOTPMaxAttempts):
			Error(ctx, http.StatusUnauthorized, "invalid OTP", err.Error())
		default:
			Error(ctx, http.StatusInternalServerError, "OTP verification failed", err.Error())
		}
		return
	}

	Success(ctx, result)
}

// Routes 返回当前用户可访问的路径前缀
// 前端据此构建导航菜单
func (c *AuthController) Routes(ctx *gin.Context) {
	role := ctx.GetString("role")
	if role == "" {
		Error(ctx, http.StatusUnauthorized, "unauthorized", "missing user role")
		return
	}

	Success(ctx, gin.H{
		"role":  role,
		"paths": c.authService.AllowedPaths(role),
	})
}
