package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/auth"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/utils"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 工号或密码错误
// 不区分用户不存在和密码错误,避免账号枚举
var ErrInvalidCredentials = errors.New("invalid taqnia ID or password")

// AuthService 认证服务接口
type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)
	VerifyOTP(ctx context.Context, req *VerifyOTPRequest) (*LoginResult, error)
	// AllowedPaths 返回角色可访问的路径前缀,供前端构建菜单
	AllowedPaths(role string) []string
}

// LoginRequest 登录请求
type LoginRequest struct {
	TaqniaID string `json:"taqnia_id" binding:"required"` // 员工工号
	Password string `json:"password" binding:"required"`  // 密码
}

// VerifyOTPRequest OTP 校验请求
type VerifyOTPRequest struct {
	TaqniaID string `json:"taqnia_id" binding:"required"` // 员工工号
	Code     string `json:"code" binding:"required"`      // 6 位验证码
}

// LoginResult 登录结果
// OTPRequired 为 true 时 Token 为空,需要继续调用 VerifyOTP
type LoginResult struct {
	Token       string           `json:"token,omitempty"`
	OTPRequired bool             `json:"otp_required"`
	User        *model.UserModel `json:"user,omitempty"`
}

// OTPSender OTP 发送接口 (邮件/短信),当前实现仅记录日志
type OTPSender interface {
	SendOTP(user *model.UserModel, code string) error
}

// authService 认证服务实现
type authService struct {
	userRepo    repository.UserRepository
	tokenIssuer *auth.TokenIssuer
	otpStore    *auth.OTPStore
	otpSender   OTPSender
	auditLogSvc AuditLogService
}

// NewAuthService 创建认证服务
func NewAuthService(
	userRepo repository.UserRepository,
	tokenIssuer *auth.TokenIssuer,
	otpStore *auth.OTPStore,
	otpSender OTPSender,
	auditLogSvc AuditLogService,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		tokenIssuer: tokenIssuer,
		otpStore:    otpStore,
		otpSender:   otpSender,
		auditLogSvc: auditLogSvc,
	}
}

// Login 工号加密码登录
// 启用 OTP 的账号验证密码后下发验证码,不直接签发令牌
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.FindByTaqniaID(req.TaqniaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if user.OTPEnabled {
		code, err := s.otpStore.Generate(user.TaqniaID)
		if err != nil {
			return nil, fmt.Errorf("failed to generate OTP: %w", err)
		}
		if s.otpSender != nil {
			if err := s.otpSender.SendOTP(user, code); err != nil {
				return nil, fmt.Errorf("failed to send OTP: %w", err)
			}
		}
		return &LoginResult{OTPRequired: true}, nil
	}

	return s.issueResult(ctx, user)
}

// VerifyOTP 校验 OTP 并签发令牌
func (s *authService) VerifyOTP(ctx context.Context, req *VerifyOTPRequest) (*LoginResult, error) {
	if err := s.otpStore.Verify(req.TaqniaID, req.Code); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByTaqniaID(req.TaqniaID)
	if err != nil {
		return nil, err
	}

	return s.issueResult(ctx, user)
}

// AllowedPaths 返回角色可访问的路径前缀
func (s *authService) AllowedPaths(role string) []string {
	return auth.AllowedPaths(role)
}

// issueResult 签发令牌并记录登录审计
func (s *authService) issueResult(ctx context.Context, user *model.UserModel) (*LoginResult, error) {
	token, err := s.tokenIssuer.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if s.auditLogSvc != nil {
		details := fmt.Sprintf(`{"taqnia_id":"%s","role":"%s"}`, user.TaqniaID, user.Role)
		_ = s.auditLogSvc.RecordAction(ctx, user.TaqniaID, "login", "user", user.TaqniaID, details)
	}

	return &LoginResult{Token: token, User: user}, nil
}
