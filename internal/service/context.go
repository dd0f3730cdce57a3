package service

import "context"

// requestKey 请求上下文键类型,避免和其他包写入的字符串键冲突
type requestKey string

const (
	keyTaqniaID  requestKey = "taqnia_id"
	keyRequestID requestKey = "request_id"
	keyClientIP  requestKey = "ip"
	keyUserAgent requestKey = "user_agent"
)

// WithRequestInfo 把认证中间件解析出的请求信息写入 context,
// 供服务层记录审计日志使用
func WithRequestInfo(ctx context.Context, taqniaID string, requestID string, ip string, userAgent string) context.Context {
	ctx = context.WithValue(ctx, keyTaqniaID, taqniaID)
	ctx = context.WithValue(ctx, keyRequestID, requestID)
	ctx = context.WithValue(ctx, keyClientIP, ip)
	ctx = context.WithValue(ctx, keyUserAgent, userAgent)
	return ctx
}

// getUserIDFromContext 从 context 中获取当前用户工号 (由认证中间件设置)
func getUserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if taqniaID, ok := ctx.Value(keyTaqniaID).(string); ok {
		return taqniaID
	}
	return ""
}

// GetRequestID 从 context 获取请求 ID
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(keyRequestID).(string); ok {
		return v
	}
	return ""
}

// GetClientIP 从 context 获取客户端 IP
func GetClientIP(ctx context.Context) string {
	if v, ok := ctx.Value(keyClientIP).(string); ok {
		return v
	}
	return ""
}

// GetUserAgent 从 context 获取 User Agent
func GetUserAgent(ctx context.Context) string {
	if v, ok := ctx.Value(keyUserAgent).(string); ok {
		return v
	}
	return ""
}
