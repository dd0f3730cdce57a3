package api

import (
	"net/http"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/auth"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/config"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Services 路由依赖的服务集合
type Services struct {
	Auth      service.AuthService
	Form      service.FormService
	Approval  service.ApprovalService
	Sheet     service.SheetService
	Dashboard service.DashboardService
	Reference service.ReferenceService
	User      service.UserService
}

// SetupRoutes 配置路由
func SetupRoutes(cfg *config.Config, db *gorm.DB, hub *websocket.Hub, issuer *auth.TokenIssuer, svcs *Services) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// 超时的操作积累到阈值时告警
	slaAlerts := NewSLAAlertManager()
	slaAlerts.SetAlertThreshold("form_save", 10)
	slaAlerts.SetAlertThreshold("form_review", 10)
	slaAlerts.SetAlertThreshold("dashboard_query", 20)
	slaAlerts.OnAlert(func(operation string, violations []SLAViolation) {
		GetLogger().WithFields(logrus.Fields{
			"operation": operation,
			"count":     len(violations),
		}).Warn("SLA violations exceeded threshold")
	})

	// 中间件链,顺序: HTTPS 重定向 → 请求 ID → 日志 → 安全头 → CORS → 限流 → SLA → 错误处理
	router.Use(HTTPSRedirectMiddlewareWithConfig(cfg.Server.ForceHTTPS))
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(&cfg.CORS))
	if cfg.RateLimit.RPS > 0 {
		router.Use(RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}
	router.Use(SLAMonitorMiddlewareWithAlert(nil, slaAlerts))
	router.Use(ErrorHandlerMiddleware())
	if cfg.Tracing.Enabled {
		router.Use(TracingMiddleware())
	}

	// 健康检查与指标
	healthController := NewHealthController(db, hub)
	router.GET("/health", healthController.Check)
	router.GET("/metrics", MetricsHandler)

	// WebSocket 通知通道
	if hub != nil && issuer != nil {
		router.GET("/ws/notifications", websocket.WebSocketHandler(hub, issuer))
	}

	authController := NewAuthController(svcs.Auth)
	formController := NewFormController(svcs.Form)
	approvalController := NewApprovalController(svcs.Approval)
	sheetController := NewSheetController(svcs.Sheet)
	dashboardController := NewDashboardController(svcs.Dashboard)
	refController := NewReferenceController(svcs.Reference)
	userController := NewUserController(svcs.User)

	v1 := router.Group("/api/v1")

	// 公开路由: 登录与 OTP 校验
	v1.POST("/users/login", authController.Login)
	v1.POST("/users/verify-otp", authController.VerifyOTP)

	// 受保护路由: JWT 认证 + 角色策略
	protected := v1.Group("")
	protected.Use(auth.AuthMiddleware(issuer))
	protected.Use(auth.PolicyMiddleware())
	{
		protected.GET("/users/routes", authController.Routes)

		// 表单
		forms := protected.Group("/forms")
		{
			forms.GET("", formController.List)
			forms.GET("/user/:taqnia_id/date/:date", formController.GetByUserAndDate)
			forms.POST("", formController.Save)
			forms.GET("/:id", formController.Get)
			forms.POST("/:id/submit", formController.Submit)
			forms.DELETE("/:id", formController.Delete)
			forms.GET("/:id/history", formController.History)
		}

		// 审批
		approvals := protected.Group("/approvals")
		{
			approvals.GET("/pending", approvalController.ListPending)
			approvals.PUT("/update", approvalController.Update)
		}

		// 图幅状态
		sheets := protected.Group("/sheet-status")
		{
			sheets.GET("/search", sheetController.Search)
			sheets.GET("/:id", sheetController.Get)
			sheets.POST("", sheetController.Save)
		}

		// 仪表盘
		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/daily", dashboardController.Daily)
			dashboard.GET("/weekly", dashboardController.Weekly)
			dashboard.GET("/project", dashboardController.Project)
			dashboard.GET("/editors", dashboardController.Editors)
		}

		// 参考数据
		layers := protected.Group("/layers")
		{
			layers.GET("", refController.ListLayers)
			layers.POST("", refController.SaveLayer)
			layers.DELETE("/:id", refController.DeleteLayer)
		}
		remarks := protected.Group("/remarks")
		{
			remarks.GET("", refController.ListRemarks)
			remarks.POST("", refController.SaveRemark)
			remarks.DELETE("/:id", refController.DeleteRemark)
		}
		products := protected.Group("/products")
		{
			products.GET("", refController.ListProducts)
			products.POST("", refController.SaveProduct)
			products.DELETE("/:id", refController.DeleteProduct)
		}
		links := protected.Group("/links")
		{
			links.GET("", refController.ListLinks)
			links.POST("", refController.SaveLink)
			links.DELETE("/:id", refController.DeleteLink)
		}
		weeklyTargets := protected.Group("/weekly-targets")
		{
			weeklyTargets.GET("", refController.ListWeeklyTargets)
			weeklyTargets.POST("", refController.SaveWeeklyTarget)
			weeklyTargets.DELETE("/:id", refController.DeleteWeeklyTarget)
		}

		// 用户管理 (仅 admin 角色可达,由策略表控制)
		users := protected.Group("/users")
		{
			users.GET("", userController.List)
			users.POST("", userController.Create)
			users.GET("/:taqnia_id", userController.Get)
			users.PUT("/:taqnia_id", userController.Update)
			users.DELETE("/:taqnia_id", userController.Delete)
		}
	}

	// 未匹配路由返回 JSON 404
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    404,
			Message: "route not found",
		})
	})

	return router
}
