package api

import (
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogMiddleware 请求日志中间件
// 探活和指标抓取不计入请求日志,避免淹没业务流量
func RequestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		// 记录 Prometheus 指标
		metrics.RecordAPIRequest(method, path, status, latency.Seconds())

		if path == "/health" || path == "/metrics" {
			return
		}

		// 使用结构化日志记录请求信息
		entry := GetLogger().WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"taqnia_id":  c.GetString("taqnia_id"),
			"method":     method,
			"path":       path,
			"status":     status,
			"latency":    latency.String(),
			"ip":         c.ClientIP(),
		})

		// 根据状态码选择日志级别
		if status >= 500 {
			entry.Error("API request")
		} else if status >= 400 {
			entry.Warn("API request")
		} else {
			entry.Info("API request")
		}
	}
}
