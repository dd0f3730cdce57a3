package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/auth"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// captureOTPSender 记录最后一次发送的验证码
type captureOTPSender struct {
	lastCode string
	lastUser string
}

func (s *captureOTPSender) SendOTP(user *model.UserModel, code string) error {
	s.lastCode = code
	s.lastUser = user.TaqniaID
	return nil
}

// newTestAuthService 构造认证服务及其依赖
func newTestAuthService(db *gorm.DB, sender service.OTPSender) service.AuthService {
	return service.NewAuthService(
		repository.NewUserRepository(db),
		auth.NewTokenIssuer("test-secret", time.Hour),
		auth.NewOTPStore(time.Minute),
		sender,
		service.NewAuditLogService(repository.NewAuditLogRepository(db)),
	)
}

// TestAuthService_Login 测试密码登录
func TestAuthService_Login(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "emp-1", model.RoleEditor, "production", "sup-1")
	svc := newTestAuthService(db, nil)

	result, err := svc.Login(context.Background(), &service.LoginRequest{
		TaqniaID: "emp-1",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.False(t, result.OTPRequired)
	assert.NotEmpty(t, result.Token)
	require.NotNil(t, result.User)
	assert.Equal(t, "emp-1", result.User.TaqniaID)

	// 登录写入审计日志
	var count int64
	db.Model(&model.AuditLogModel{}).Where("action = ?", "login").Count(&count)
	assert.EqualValues(t, 1, count)
}

// TestAuthService_Login_InvalidCredentials 测试错误凭证
func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "emp-1", model.RoleEditor, "production", "sup-1")
	svc := newTestAuthService(db, nil)

	// 密码错误
	_, err := svc.Login(context.Background(), &service.LoginRequest{
		TaqniaID: "emp-1",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	// 用户不存在返回同一个错误,避免账号枚举
	_, err = svc.Login(context.Background(), &service.LoginRequest{
		TaqniaID: "unknown",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

// TestAuthService_OTPFlow 测试 OTP 两步登录
func TestAuthService_OTPFlow(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "emp-1", model.RoleEditor, "production", "sup-1")
	require.NoError(t, db.Model(user).Update("otp_enabled", true).Error)

	sender := &captureOTPSender{}
	svc := newTestAuthService(db, sender)

	// 第一步: 密码验证通过后下发验证码,不签发令牌
	result, err := svc.Login(context.Background(), &service.LoginRequest{
		TaqniaID: "emp-1",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.True(t, result.OTPRequired)
	assert.Empty(t, result.Token)
	assert.Equal(t, "emp-1", sender.lastUser)
	require.Len(t, sender.lastCode, 6)

	// 第二步: 校验验证码并签发令牌
	verified, err := svc.VerifyOTP(context.Background(), &service.VerifyOTPRequest{
		TaqniaID: "emp-1",
		Code:     sender.lastCode,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, verified.Token)

	// 错误的验证码
	_, err = svc.Login(context.Background(), &service.LoginRequest{
		TaqniaID: "emp-1",
		Password: "secret123",
	})
	require.NoError(t, err)
	_, err = svc.VerifyOTP(context.Background(), &service.VerifyOTPRequest{
		TaqniaID: "emp-1",
		Code:     "0000000",
	})
	assert.ErrorIs(t, err, auth.ErrOTPMismatch)
}

// TestAuthService_AllowedPaths 测试路径列表透传
func TestAuthService_AllowedPaths(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db, nil)

	paths := svc.AllowedPaths(model.RoleEditor)
	assert.Contains(t, paths, "/api/v1/forms")
	assert.Nil(t, svc.AllowedPaths("guest"))
}
