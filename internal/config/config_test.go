package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults 测试默认配置
func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Server.ForceHTTPS)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "makan_forms", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.Equal(t, 5, cfg.Auth.OTPTTLMinutes)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 100.0, cfg.RateLimit.RPS)
	assert.False(t, cfg.Tracing.Enabled)
	assert.False(t, config.IsProduction(cfg))
}

// TestLoad_FromFile 测试从配置文件加载
func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
env: production
server:
  host: 127.0.0.1
  port: 9090
database:
  dbname: forms_prod
auth:
  jwt_secret: super-secret
  token_ttl_hours: 12
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "forms_prod", cfg.Database.DBName)
	assert.Equal(t, "super-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 12, cfg.Auth.TokenTTLHours)
	assert.True(t, config.IsProduction(cfg))

	// 文件未覆盖的项保留默认值
	assert.Equal(t, 5432, cfg.Database.Port)
}

// TestLoad_MissingFile 测试配置文件不存在
func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

// TestLoad_EnvOverride 测试环境变量覆盖
func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "18080")
	t.Setenv("APP_DATABASE_PASSWORD", "env-password")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.Server.Port)
	assert.Equal(t, "env-password", cfg.Database.Password)
}

// TestDefault 测试内置默认配置
func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Env)
}

// TestIsProduction_Nil 测试空配置
func TestIsProduction_Nil(t *testing.T) {
	assert.False(t, config.IsProduction(nil))
}
