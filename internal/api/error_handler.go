package api

import (
	"errors"
	"net/http"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/service"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/workflow"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// APIError 控制器显式构造的 HTTP 错误
type APIError struct {
	Code    int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	return e.Message
}

// WrapError 包装错误
func WrapError(err error, code int, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Detail:  err.Error(),
	}
}

// ErrorHandlerMiddleware 统一错误处理
// 控制器通过 c.Error 上报的错误在此翻译为响应信封:
// APIError 按携带的状态码返回,领域错误映射到对应的 HTTP 状态,其余归为 500
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()

		var apiErr *APIError
		if errors.As(err, &apiErr) {
			Error(c, apiErr.Code, apiErr.Message, apiErr.Detail)
			return
		}

		code, message := TranslateDomainError(err, "internal server error")
		Error(c, code, message, err.Error())
	}
}

// TranslateDomainError 把服务层错误映射为 HTTP 状态码和提示信息
// fallback 是未识别错误的提示,映射不到时归为 500
func TranslateDomainError(err error, fallback string) (int, string) {
	var validationErr *workflow.ValidationError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, service.ErrVersionConflict):
		return http.StatusConflict, "form version conflict"
	case errors.Is(err, service.ErrFormNotEditable):
		return http.StatusConflict, "form is not editable"
	case errors.Is(err, service.ErrNotPending):
		return http.StatusConflict, "form is not pending review"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, service.ErrSheetNotSelectable),
		errors.Is(err, service.ErrNoDeltaSelected),
		errors.Is(err, service.ErrMissingSelection),
		errors.As(err, &validationErr):
		return http.StatusBadRequest, "invalid form"
	default:
		return http.StatusInternalServerError, fallback
	}
}
