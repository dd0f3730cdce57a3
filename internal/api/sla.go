package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// SLAConfig SLA 配置
type SLAConfig struct {
	FormSaveMaxTime       time.Duration // 表单保存最大响应时间
	FormReviewMaxTime     time.Duration // 表单审批最大响应时间
	FormQueryMaxTime      time.Duration // 表单查询最大响应时间
	DashboardQueryMaxTime time.Duration // 仪表盘查询最大响应时间
}

// DefaultSLAConfig 返回默认 SLA 配置
func DefaultSLAConfig() *SLAConfig {
	return &SLAConfig{
		FormSaveMaxTime:       1 * time.Second,
		FormReviewMaxTime:     2 * time.Second,
		FormQueryMaxTime:      500 * time.Millisecond,
		DashboardQueryMaxTime: 2 * time.Second,
	}
}

// getOperation 从请求路径和方法获取操作类型
func getOperation(c *gin.Context) string {
	method := c.Request.Method
	path := c.Request.URL.Path

	if strings.HasPrefix(path, "/api/v1/forms") {
		switch {
		case method == "POST" && strings.HasSuffix(path, "/submit"):
			return "form_save"
		case method == "POST" || method == "PUT":
			return "form_save"
		case method == "GET":
			return "form_query"
		}
	}
	if strings.HasPrefix(path, "/api/v1/approvals") && method == "PUT" {
		return "form_review"
	}
	if strings.HasPrefix(path, "/api/v1/dashboard") {
		return "dashboard_query"
	}

	return "unknown"
}

// CheckSLA 检查 SLA
func CheckSLA(operation string, duration time.Duration, config *SLAConfig) bool {
	switch operation {
	case "form_save":
		return duration <= config.FormSaveMaxTime
	case "form_review":
		return duration <= config.FormReviewMaxTime
	case "form_query":
		return duration <= config.FormQueryMaxTime
	case "dashboard_query":
		return duration <= config.DashboardQueryMaxTime
	default:
		return true // 未知操作不检查 SLA
	}
}

// SLAMonitorMiddleware SLA 监控中间件
func SLAMonitorMiddleware(config *SLAConfig) gin.HandlerFunc {
	return SLAMonitorMiddlewareWithAlert(config, nil)
}

// SLAMonitorMiddlewareWithAlert SLA 监控中间件,超时的操作记入告警管理器
func SLAMonitorMiddlewareWithAlert(config *SLAConfig, alerts *SLAAlertManager) gin.HandlerFunc {
	if config == nil {
		config = DefaultSLAConfig()
	}

	return func(c *gin.Context) {
		start := time.Now()
		operation := getOperation(c)

		c.Next()

		duration := time.Since(start)
		if !CheckSLA(operation, duration, config) {
			expected := getExpectedDuration(operation, config)

			c.Header("X-SLA-Violation", "true")
			c.Header("X-SLA-Operation", operation)
			c.Header("X-SLA-Duration", duration.String())
			c.Header("X-SLA-Expected", expected.String())

			if alerts != nil {
				alerts.RecordViolation(operation, SLAViolation{
					Operation: operation,
					Duration:  duration,
					Expected:  expected,
					Timestamp: start,
					Path:      c.Request.URL.Path,
					Method:    c.Request.Method,
				})
			}
		}
	}
}

// getExpectedDuration 获取期望的响应时间
func getExpectedDuration(operation string, config *SLAConfig) time.Duration {
	switch operation {
	case "form_save":
		return config.FormSaveMaxTime
	case "form_review":
		return config.FormReviewMaxTime
	case "form_query":
		return config.FormQueryMaxTime
	case "dashboard_query":
		return config.DashboardQueryMaxTime
	default:
		return 0
	}
}

// SLAViolation SLA 违反记录
type SLAViolation struct {
	Operation string
	Duration  time.Duration
	Expected  time.Duration
	Timestamp time.Time
	Path      string
	Method    string
}

// SLAAlertManager SLA 告警管理器
type SLAAlertManager struct {
	violations     map[string][]SLAViolation
	thresholds     map[string]int
	alertCallbacks []func(string, []SLAViolation)
	mu             sync.RWMutex
}

// NewSLAAlertManager 创建 SLA 告警管理器
func NewSLAAlertManager() *SLAAlertManager {
	return &SLAAlertManager{
		violations:     make(map[string][]SLAViolation),
		thresholds:     make(map[string]int),
		alertCallbacks: make([]func(string, []SLAViolation), 0),
	}
}

// RecordViolation 记录 SLA 违反
func (m *SLAAlertManager) RecordViolation(operation string, violation SLAViolation) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.violations[operation] = append(m.violations[operation], violation)

	threshold := m.thresholds[operation]
	if threshold > 0 && len(m.violations[operation]) >= threshold {
		m.triggerAlert(operation)
	}
}

// SetAlertThreshold 设置告警阈值
func (m *SLAAlertManager) SetAlertThreshold(operation string, threshold int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.thresholds[operation] = threshold
}

// OnAlert 注册告警回调
func (m *SLAAlertManager) OnAlert(callback func(string, []SLAViolation)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alertCallbacks = append(m.alertCallbacks, callback)
}

// triggerAlert 触发告警,调用方需持有锁
func (m *SLAAlertManager) triggerAlert(operation string) {
	violations := m.violations[operation]
	for _, callback := range m.alertCallbacks {
		go callback(operation, violations)
	}
	// 触发后清空计数,避免重复告警
	m.violations[operation] = nil
}

// GetViolations 获取某操作的违反记录
func (m *SLAAlertManager) GetViolations(operation string) []SLAViolation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.violations[operation]
}
