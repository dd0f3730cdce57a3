package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword 哈希密码 (使用 bcrypt)
func HashPassword(password string) (string, error) {
	// 使用 bcrypt 默认 cost (10)
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// VerifyPassword 验证密码
func VerifyPassword(password string, hashedPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
