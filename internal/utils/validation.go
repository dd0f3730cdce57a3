package utils

import (
	"html"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// SanitizeString 清理字符串,移除或转义危险字符
func SanitizeString(input string) string {
	// 1. HTML 转义,防止 XSS
	sanitized := html.EscapeString(input)

	// 2. 移除控制字符 (除了换行符和制表符)
	var result strings.Builder
	for _, r := range sanitized {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateEntityID 验证实体 ID 格式 (表单、用户、图层等通用)
func ValidateEntityID(id string) error {
	// 1. 检查是否为空
	if id == "" {
		return ErrEmptyID
	}

	// 2. 检查格式 (只允许字母、数字、连字符、下划线)
	if !idPattern.MatchString(id) {
		return ErrInvalidIDFormat
	}

	// 3. 检查长度 (最大 64 字符)
	if len(id) > 64 {
		return ErrIDTooLong
	}

	return nil
}

// ValidateDate 验证业务日期格式 (YYYY-MM-DD)
func ValidateDate(date string) error {
	if date == "" {
		return ErrEmptyDate
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDateFormat
	}
	return nil
}

// ValidateName 验证名称字段 (图层、备注、产品等)
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyName
	}
	if len(trimmed) > 255 {
		return ErrNameTooLong
	}
	return nil
}

// TrimAndValidate 清理并验证字符串
func TrimAndValidate(s string, maxLen int) (string, error) {
	// 1. 去除首尾空白字符
	trimmed := strings.TrimSpace(s)

	// 2. 检查是否为空
	if trimmed == "" {
		return "", ErrEmptyString
	}

	// 3. 检查长度
	if maxLen > 0 && len(trimmed) > maxLen {
		return "", ErrStringTooLong
	}

	// 4. 清理危险字符
	return SanitizeString(trimmed), nil
}

// 错误定义
var (
	ErrEmptyName         = &ValidationError{Code: "EMPTY_NAME", Message: "name cannot be empty"}
	ErrNameTooLong       = &ValidationError{Code: "NAME_TOO_LONG", Message: "name exceeds maximum length"}
	ErrEmptyID           = &ValidationError{Code: "EMPTY_ID", Message: "id cannot be empty"}
	ErrInvalidIDFormat   = &ValidationError{Code: "INVALID_ID_FORMAT", Message: "id contains invalid characters"}
	ErrIDTooLong         = &ValidationError{Code: "ID_TOO_LONG", Message: "id exceeds maximum length"}
	ErrEmptyDate         = &ValidationError{Code: "EMPTY_DATE", Message: "date cannot be empty"}
	ErrInvalidDateFormat = &ValidationError{Code: "INVALID_DATE_FORMAT", Message: "date must be in YYYY-MM-DD format"}
	ErrEmptyString       = &ValidationError{Code: "EMPTY_STRING", Message: "string cannot be empty"}
	ErrStringTooLong     = &ValidationError{Code: "STRING_TOO_LONG", Message: "string exceeds maximum length"}
)

// ValidationError 验证错误
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
