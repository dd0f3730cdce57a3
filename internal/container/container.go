package container

import (
	"fmt"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/auth"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/config"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/database"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/integration"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/metrics"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/repository"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/websocket"
	"gorm.io/gorm"
)

// Container 依赖注入容器
// 管理数据库连接、WebSocket Hub、事件分发器和全部业务服务
type Container struct {
	db          *gorm.DB
	hub         *websocket.Hub
	dispatcher  *integration.Dispatcher
	tokenIssuer *auth.TokenIssuer
	otpStore    *auth.OTPStore
	collector   *metrics.Collector
	services    *Services
}

// Services 业务服务集合
type Services struct {
	AuditLog  service.AuditLogService
	Auth      service.AuthService
	Form      service.FormService
	Approval  service.ApprovalService
	Sheet     service.SheetService
	Dashboard service.DashboardService
	Reference service.ReferenceService
	User      service.UserService
}

// NewContainer 创建依赖注入容器
func NewContainer(cfg *config.Config) (*Container, error) {
	// 初始化数据库 (带重试,指数退避)
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// WebSocket Hub 与事件分发器
	hub := websocket.NewHub()
	dispatcher := integration.NewDispatcher(db, hub, 5)

	// 认证组件
	tokenIssuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	otpStore := auth.NewOTPStore(time.Duration(cfg.Auth.OTPTTLMinutes) * time.Minute)

	// 业务指标收集器
	collector := metrics.NewCollector(db, 30*time.Second)

	// 仓储
	formRepo := repository.NewFormRepository(db)
	userRepo := repository.NewUserRepository(db)
	sheetRepo := repository.NewSheetStatusRepository(db)
	historyRepo := repository.NewStateHistoryRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	refRepo := repository.NewReferenceRepository(db)

	// 服务
	auditLogSvc := service.NewAuditLogService(auditRepo)
	authSvc := service.NewAuthService(userRepo, tokenIssuer, otpStore, integration.NewLogOTPSender(), auditLogSvc)
	formSvc := service.NewFormService(formRepo, userRepo, sheetRepo, historyRepo, auditLogSvc, dispatcher)
	approvalSvc := service.NewApprovalService(db, formRepo, sheetRepo, historyRepo, auditLogSvc, dispatcher)
	sheetSvc := service.NewSheetService(sheetRepo, auditLogSvc)
	dashboardSvc := service.NewDashboardService(db)
	refSvc := service.NewReferenceService(refRepo, auditLogSvc)
	userSvc := service.NewUserService(userRepo, auditLogSvc)

	return &Container{
		db:          db,
		hub:         hub,
		dispatcher:  dispatcher,
		tokenIssuer: tokenIssuer,
		otpStore:    otpStore,
		collector:   collector,
		services: &Services{
			AuditLog:  auditLogSvc,
			Auth:      authSvc,
			Form:      formSvc,
			Approval:  approvalSvc,
			Sheet:     sheetSvc,
			Dashboard: dashboardSvc,
			Reference: refSvc,
			User:      userSvc,
		},
	}, nil
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Hub 获取 WebSocket Hub
func (c *Container) Hub() *websocket.Hub {
	return c.hub
}

// Dispatcher 获取事件分发器
func (c *Container) Dispatcher() *integration.Dispatcher {
	return c.dispatcher
}

// TokenIssuer 获取 JWT 签发器
func (c *Container) TokenIssuer() *auth.TokenIssuer {
	return c.tokenIssuer
}

// OTPStore 获取 OTP 存储
func (c *Container) OTPStore() *auth.OTPStore {
	return c.otpStore
}

// Collector 获取业务指标收集器
func (c *Container) Collector() *metrics.Collector {
	return c.collector
}

// Services 获取业务服务集合
func (c *Container) Services() *Services {
	return c.services
}

// Close 关闭容器,清理资源
func (c *Container) Close() error {
	if c.collector != nil {
		c.collector.Stop()
	}
	if c.dispatcher != nil {
		c.dispatcher.Stop()
	}
	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	return nil
}
