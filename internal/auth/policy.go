package auth

import (
	"net/http"
	"strings"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/gin-gonic/gin"
)

// rolePolicy 角色 → 允许访问的路径前缀表
// 客户端侧边栏过滤和服务端路由守卫共用同一张表
var rolePolicy = map[string][]string{
	model.RoleEditor: {
		"/api/v1/users/routes",
		"/api/v1/forms",
		"/api/v1/sheet-status",
		"/api/v1/layers",
		"/api/v1/remarks",
		"/api/v1/products",
		"/api/v1/links",
	},
	model.RoleSupervisor: {
		"/api/v1/users/routes",
		"/api/v1/forms",
		"/api/v1/approvals",
		"/api/v1/sheet-status",
		"/api/v1/dashboard",
		"/api/v1/layers",
		"/api/v1/remarks",
		"/api/v1/products",
		"/api/v1/links",
	},
	model.RoleManager: {
		"/api/v1/users/routes",
		"/api/v1/forms",
		"/api/v1/approvals",
		"/api/v1/sheet-status",
		"/api/v1/dashboard",
		"/api/v1/weekly-targets",
		"/api/v1/layers",
		"/api/v1/remarks",
		"/api/v1/products",
		"/api/v1/links",
	},
	model.RoleAdmin: {
		"/api/v1/",
	},
}

// Authorize 判断角色是否允许访问指定路径
func Authorize(role string, path string) bool {
	prefixes, ok := rolePolicy[role]
	if !ok {
		return false
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AllowedPaths 返回角色可访问的路径前缀列表
// 供客户端构建导航菜单
func AllowedPaths(role string) []string {
	prefixes, ok := rolePolicy[role]
	if !ok {
		return nil
	}
	result := make([]string, len(prefixes))
	copy(result, prefixes)
	return result
}

// PolicyMiddleware 路由授权中间件
// 依赖 AuthMiddleware 先写入 role,再按策略表做前缀匹配
func PolicyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if !Authorize(role, c.Request.URL.Path) {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "access denied for this role",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
