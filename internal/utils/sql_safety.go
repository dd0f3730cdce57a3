package utils

import (
	"errors"
	"regexp"
	"strings"
)

// sortableFields 允许排序的字段白名单
var sortableFields = map[string]bool{
	"created_at":        true,
	"updated_at":        true,
	"submission_date":   true,
	"productivity_date": true,
	"taqnia_id":         true,
	"state":             true,
	"sheet_number":      true,
	"completion":        true,
	"name":              true,
}

// ValidateSortField 验证排序字段,防止 SQL 注入
func ValidateSortField(field string) error {
	if field == "" {
		return errors.New("sort field cannot be empty")
	}

	// 只允许字母、数字、下划线
	matched, _ := regexp.MatchString(`^[a-zA-Z0-9_]+$`, field)
	if !matched {
		return errors.New("invalid sort field format")
	}

	// 白名单之外的字段一律拒绝
	if !sortableFields[field] {
		return errors.New("sort field not allowed")
	}

	return nil
}

// ValidateSortOrder 验证排序方向
func ValidateSortOrder(order string) error {
	upperOrder := strings.ToUpper(strings.TrimSpace(order))
	if upperOrder != "ASC" && upperOrder != "DESC" {
		return errors.New("sort order must be ASC or DESC")
	}
	return nil
}

// SanitizeSortOrder 清理排序方向
func SanitizeSortOrder(order string) string {
	upperOrder := strings.ToUpper(strings.TrimSpace(order))
	if upperOrder == "ASC" || upperOrder == "DESC" {
		return upperOrder
	}
	return "DESC" // 默认降序
}
