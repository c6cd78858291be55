package auth

import (
	"time"

	"github.com/TencentBlueKing/gopkg/conv"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenType Bearer Token 类型标识
const TokenType = "Bearer"

// ErrInvalidToken Token 不合法（签名错误 / 格式错误 / 已过期）
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims 博客 Token 负载，Subject 为作者用户名
type Claims struct {
	jwt.RegisteredClaims
}

// TokenIssuer 负责签发与校验访问 Token
type TokenIssuer struct {
	signingKey []byte
	expiration time.Duration
}

// NewTokenIssuer ...
func NewTokenIssuer(signingKey string, expiration time.Duration) *TokenIssuer {
	return &TokenIssuer{signingKey: conv.StringToBytes(signingKey), expiration: expiration}
}

// Issue 为指定用户签发 Token
func (i *TokenIssuer) Issue(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Verify 校验 Token，通过则返回其中的用户名
func (i *TokenIssuer) Verify(tokenStr string) (string, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims,
		func(t *jwt.Token) (any, error) { return i.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Expiration Token 有效期（登录响应中的 expires_in，单位毫秒）
func (i *TokenIssuer) Expiration() int64 {
	return i.expiration.Milliseconds()
}
