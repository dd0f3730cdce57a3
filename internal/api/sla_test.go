package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/api"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// TestCheckSLA 测试各操作的响应时间判定
func TestCheckSLA(t *testing.T) {
	cfg := api.DefaultSLAConfig()

	assert.True(t, api.CheckSLA("form_save", 500*time.Millisecond, cfg))
	assert.False(t, api.CheckSLA("form_save", 2*time.Second, cfg))
	assert.True(t, api.CheckSLA("form_query", 100*time.Millisecond, cfg))
	assert.False(t, api.CheckSLA("form_query", time.Second, cfg))
	assert.True(t, api.CheckSLA("dashboard_query", time.Second, cfg))
	// 未知操作不检查
	assert.True(t, api.CheckSLA("unknown", time.Hour, cfg))
}

// TestSLAMonitorMiddleware_Violation 测试超时请求打上违反标记
func TestSLAMonitorMiddleware_Violation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 预算压到 1ns,任何请求都会超时
	tight := &api.SLAConfig{
		FormSaveMaxTime:       time.Nanosecond,
		FormReviewMaxTime:     time.Nanosecond,
		FormQueryMaxTime:      time.Nanosecond,
		DashboardQueryMaxTime: time.Nanosecond,
	}

	router := gin.New()
	router.Use(api.SLAMonitorMiddleware(tight))
	router.GET("/api/v1/forms/f1", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/forms/f1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, "true", w.Header().Get("X-SLA-Violation"))
	assert.Equal(t, "form_query", w.Header().Get("X-SLA-Operation"))
	assert.NotEmpty(t, w.Header().Get("X-SLA-Duration"))

	// 预算充裕时不打标记
	router = gin.New()
	router.Use(api.SLAMonitorMiddleware(nil))
	router.GET("/api/v1/forms/f1", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/forms/f1", nil)
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("X-SLA-Violation"))
}

// TestSLAMonitorMiddlewareWithAlert 测试违反记录进入告警管理器
func TestSLAMonitorMiddlewareWithAlert(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tight := &api.SLAConfig{
		FormSaveMaxTime:       time.Nanosecond,
		FormReviewMaxTime:     time.Nanosecond,
		FormQueryMaxTime:      time.Nanosecond,
		DashboardQueryMaxTime: time.Nanosecond,
	}
	alerts := api.NewSLAAlertManager()

	router := gin.New()
	router.Use(api.SLAMonitorMiddlewareWithAlert(tight, alerts))
	router.PUT("/api/v1/approvals/update", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/approvals/update", nil)
	router.ServeHTTP(w, req)

	violations := alerts.GetViolations("form_review")
	assert.Len(t, violations, 1)
	assert.Equal(t, "/api/v1/approvals/update", violations[0].Path)
	assert.Equal(t, http.MethodPut, violations[0].Method)
}

// TestSLAAlertManager_Threshold 测试达到阈值时触发告警并清空计数
func TestSLAAlertManager_Threshold(t *testing.T) {
	alerts := api.NewSLAAlertManager()
	alerts.SetAlertThreshold("form_save", 2)

	fired := make(chan int, 1)
	alerts.OnAlert(func(operation string, violations []api.SLAViolation) {
		assert.Equal(t, "form_save", operation)
		fired <- len(violations)
	})

	violation := api.SLAViolation{Operation: "form_save", Duration: time.Second}
	alerts.RecordViolation("form_save", violation)
	select {
	case <-fired:
		t.Fatal("alert fired below threshold")
	case <-time.After(50 * time.Millisecond):
	}

	alerts.RecordViolation("form_save", violation)
	select {
	case count := <-fired:
		assert.Equal(t, 2, count)
	case <-time.After(time.Second):
		t.Fatal("alert not fired at threshold")
	}

	// 触发后清空计数
	assert.Empty(t, alerts.GetViolations("form_save"))
}
