package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/api"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSuccess 测试成功响应格式
func TestSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	api.Success(c, gin.H{"id": "form-1"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "success", resp.Message)
	assert.NotNil(t, resp.Data)
}

// TestError 测试错误响应格式
func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	api.Error(c, http.StatusNotFound, "form not found", "id: form-1")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "form not found", resp.Message)
	assert.Equal(t, "id: form-1", resp.Detail)
}

// TestError_InvalidCode 测试非 HTTP 错误码回落到 500
func TestError_InvalidCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	api.Error(c, 10042, "business error", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// 业务码保留在响应体中
	assert.Equal(t, 10042, resp.Code)
}

// TestPaginated 测试分页响应格式
func TestPaginated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	api.Paginated(c, []string{"a", "b"}, api.PaginationInfo{
		Page:      1,
		PageSize:  20,
		Total:     2,
		TotalPage: 1,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.EqualValues(t, 2, resp.Pagination.Total)
}
