package auth

import (
	"github.com/TencentBlueKing/gopkg/conv"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt 成本因子，单用户登录场景可以接受较高成本
const bcryptCost = 14

// HashPassword 生成密码哈希
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(conv.StringToBytes(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword 校验密码与哈希是否匹配
func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword(conv.StringToBytes(hashed), conv.StringToBytes(password)) == nil
}
