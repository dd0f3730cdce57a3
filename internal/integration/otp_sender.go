package integration

import (
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/sirupsen/logrus"
)

// LogOTPSender 把验证码写入日志的 OTP 发送器
// 邮件/短信通道接入前的占位实现,生产环境禁止使用
type LogOTPSender struct{}

// NewLogOTPSender 创建日志 OTP 发送器
func NewLogOTPSender() *LogOTPSender {
	return &LogOTPSender{}
}

// SendOTP 记录验证码日志
func (s *LogOTPSender) SendOTP(user *model.UserModel, code string) error {
	logrus.WithFields(logrus.Fields{
		"taqnia_id": user.TaqniaID,
		"email":     user.Email,
		"code":      code,
	}).Info("OTP 验证码已生成")
	return nil
}
