package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// OTP 验证相关错误
var (
	ErrOTPNotFound    = errors.New("no pending OTP challenge for this user")
	ErrOTPExpired     = errors.New("OTP code expired")
	ErrOTPMismatch    = errors.New("OTP code does not match")
	ErrOTPMaxAttempts = errors.New("too many failed OTP attempts")
)

// maxOTPAttempts 单次挑战允许的最大验证失败次数
const maxOTPAttempts = 5

// otpChallenge 一次待验证的 OTP 挑战
type otpChallenge struct {
	code      string
	expiresAt time.Time
	attempts  int
}

// OTPStore OTP 挑战存储 (内存实现)
// 登录第二步验证使用,code 过期或验证失败次数超限后作废
type OTPStore struct {
	ttl        time.Duration
	challenges map[string]*otpChallenge
	mu         sync.Mutex
}

// NewOTPStore 创建 OTP 存储
func NewOTPStore(ttl time.Duration) *OTPStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OTPStore{
		ttl:        ttl,
		challenges: make(map[string]*otpChallenge),
	}
}

// Generate 为用户生成 6 位数字 OTP,覆盖旧挑战
func (s *OTPStore) Generate(taqniaID string) (string, error) {
	code, err := randomCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[taqniaID] = &otpChallenge{
		code:      code,
		expiresAt: time.Now().Add(s.ttl),
	}
	return code, nil
}

// Verify 验证用户提交的 OTP,验证成功后挑战即作废
func (s *OTPStore) Verify(taqniaID string, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[taqniaID]
	if !ok {
		return ErrOTPNotFound
	}

	if time.Now().After(challenge.expiresAt) {
		delete(s.challenges, taqniaID)
		return ErrOTPExpired
	}

	if challenge.code != code {
		challenge.attempts++
		if challenge.attempts >= maxOTPAttempts {
			delete(s.challenges, taqniaID)
			return ErrOTPMaxAttempts
		}
		return ErrOTPMismatch
	}

	delete(s.challenges, taqniaID)
	return nil
}

// randomCode 生成 6 位数字验证码
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
