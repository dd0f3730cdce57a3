package api

import (
	"context"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// requestContext 把认证中间件放进 gin.Context 的请求信息
// 复制到标准 context,供服务层记录审计日志使用
func requestContext(c *gin.Context) context.Context {
	return service.WithRequestInfo(
		c.Request.Context(),
		c.GetString("taqnia_id"),
		c.GetString("request_id"),
		c.ClientIP(),
		c.Request.UserAgent(),
	)
}
