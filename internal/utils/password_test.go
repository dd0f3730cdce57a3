package utils_test

import (
	"testing"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHashPassword 测试密码哈希
func TestHashPassword(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)

	// 同一密码两次哈希结果不同 (随机盐)
	hash2, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

// TestVerifyPassword 测试密码验证
func TestVerifyPassword(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	assert.True(t, utils.VerifyPassword("secret123", hash))
	assert.False(t, utils.VerifyPassword("wrong", hash))
	assert.False(t, utils.VerifyPassword("secret123", "not-a-hash"))
}
