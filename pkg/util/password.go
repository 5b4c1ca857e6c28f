package util

import (
	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost는 bcrypt 비용 계수입니다.
// 기본값(10)보다 높게 잡되 로그인 지연이 체감되지 않는 수준으로 유지합니다.
const passwordHashCost = 12

// HashPassword는 평문 비밀번호의 bcrypt 해시를 반환합니다
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword는 평문 비밀번호가 저장된 해시와 일치하는지 확인합니다
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
