package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/api"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/auth"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/config"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/database"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestRouter 用内存数据库和默认配置组装完整路由
func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	issuer := auth.NewTokenIssuer("test-secret", 0)
	return api.SetupRoutes(config.Default(), db, nil, issuer, &api.Services{})
}

// TestSetupRoutes 测试路由组装和基础链路
func TestSetupRoutes(t *testing.T) {
	router := newTestRouter(t)

	// 健康检查可达且数据库连通
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"healthy"`)

	// 指标端点可达
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// 受保护路由未带 token 时拒绝
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/forms", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// 未匹配的路由返回 JSON 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "route not found")
}
