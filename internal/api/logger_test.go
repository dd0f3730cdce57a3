package api_test

import (
	"bytes"
	"testing"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/api"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitLogger 测试按配置初始化默认日志记录器
func TestInitLogger(t *testing.T) {
	logger, err := api.InitLogger(&config.LogConfig{
		Level:  "warn",
		Format: "json",
		Output: "stdout",
	})
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &api.JSONFormatter{}, logger.Formatter)

	// InitLogger 之后 GetLogger 返回同一实例
	assert.Same(t, logger, api.GetLogger())

	// 非法级别回落到 info
	logger, err = api.InitLogger(&config.LogConfig{Level: "nope", Format: "text"})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

// TestSetLoggerLevel 测试日志级别热更新
func TestSetLoggerLevel(t *testing.T) {
	logger, err := api.InitLogger(&config.LogConfig{Level: "info", Format: "json", Output: "stdout"})
	require.NoError(t, err)

	var buf bytes.Buffer
	api.SetLoggerOutput(&buf)

	api.SetLoggerLevel(logrus.ErrorLevel)
	logger.Info("quiet")
	logger.Error("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, `"service":"makan-forms"`)
}
