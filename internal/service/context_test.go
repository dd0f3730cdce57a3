package service_test

import (
	"context"
	"testing"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/stretchr/testify/assert"
)

// TestWithRequestInfo 测试请求信息的写入和读取
func TestWithRequestInfo(t *testing.T) {
	ctx := service.WithRequestInfo(context.Background(), "emp-1", "req-1", "10.0.0.1", "test-agent")

	assert.Equal(t, "req-1", service.GetRequestID(ctx))
	assert.Equal(t, "10.0.0.1", service.GetClientIP(ctx))
	assert.Equal(t, "test-agent", service.GetUserAgent(ctx))
}

// TestWithRequestInfo_TypedKeys 测试类型化键不会和裸字符串键混淆
func TestWithRequestInfo_TypedKeys(t *testing.T) {
	ctx := context.WithValue(context.Background(), "request_id", "req-raw") //nolint:staticcheck

	assert.Empty(t, service.GetRequestID(ctx))
	assert.Empty(t, service.GetClientIP(ctx))
	assert.Empty(t, service.GetUserAgent(ctx))
}
