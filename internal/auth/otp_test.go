package auth_test

import (
	"testing"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOTPStore_GenerateAndVerify 测试 OTP 生成和验证
func TestOTPStore_GenerateAndVerify(t *testing.T) {
	store := auth.NewOTPStore(time.Minute)

	code, err := store.Generate("emp-1")
	require.NoError(t, err)
	assert.Len(t, code, 6)

	require.NoError(t, store.Verify("emp-1", code))

	// 验证成功后挑战作废,不能重放
	assert.ErrorIs(t, store.Verify("emp-1", code), auth.ErrOTPNotFound)
}

// TestOTPStore_NotFound 测试没有待验证挑战的用户
func TestOTPStore_NotFound(t *testing.T) {
	store := auth.NewOTPStore(time.Minute)
	assert.ErrorIs(t, store.Verify("unknown", "123456"), auth.ErrOTPNotFound)
}

// TestOTPStore_Mismatch 测试验证码不匹配
func TestOTPStore_Mismatch(t *testing.T) {
	store := auth.NewOTPStore(time.Minute)

	code, err := store.Generate("emp-1")
	require.NoError(t, err)

	assert.ErrorIs(t, store.Verify("emp-1", "000000x"), auth.ErrOTPMismatch)

	// 失败后正确验证码仍然有效
	require.NoError(t, store.Verify("emp-1", code))
}

// TestOTPStore_MaxAttempts 测试失败次数超限
func TestOTPStore_MaxAttempts(t *testing.T) {
	store := auth.NewOTPStore(time.Minute)

	code, err := store.Generate("emp-1")
	require.NoError(t, err)

	wrong := "000000x"
	for i := 0; i < 4; i++ {
		assert.ErrorIs(t, store.Verify("emp-1", wrong), auth.ErrOTPMismatch)
	}
	// 第 5 次失败作废挑战
	assert.ErrorIs(t, store.Verify("emp-1", wrong), auth.ErrOTPMaxAttempts)
	assert.ErrorIs(t, store.Verify("emp-1", code), auth.ErrOTPNotFound)
}

// TestOTPStore_Expired 测试验证码过期
func TestOTPStore_Expired(t *testing.T) {
	store := auth.NewOTPStore(time.Millisecond)

	code, err := store.Generate("emp-1")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	assert.ErrorIs(t, store.Verify("emp-1", code), auth.ErrOTPExpired)
}

// TestOTPStore_Regenerate 测试重新生成覆盖旧挑战
func TestOTPStore_Regenerate(t *testing.T) {
	store := auth.NewOTPStore(time.Minute)

	first, err := store.Generate("emp-1")
	require.NoError(t, err)
	second, err := store.Generate("emp-1")
	require.NoError(t, err)

	if first != second {
		assert.ErrorIs(t, store.Verify("emp-1", first), auth.ErrOTPMismatch)
	}
	require.NoError(t, store.Verify("emp-1", second))
}
