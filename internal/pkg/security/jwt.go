package security

import (
	"Pulse/internal/api/config"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret []byte
	jwtIssuer string
)

// Init 设置校验所用的密钥与签发方
func Init(cfg config.AuthConfig) {
	jwtSecret = []byte(cfg.Secret)
	jwtIssuer = cfg.Issuer
}

// GenerateToken 签发一个 Token，供本地调试与测试使用
func GenerateToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SubjectClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", fmt.Errorf("签名 Token 失败: %w", err)
	}
	return tokenString, nil
}

// ValidateToken 验证 Token 字符串并解析出 Claims
func ValidateToken(tokenString string) (*SubjectClaims, error) {
	claims := &SubjectClaims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if jwtIssuer != "" {
		opts = append(opts, jwt.WithIssuer(jwtIssuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("token 解析失败: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token 无效或已过期")
	}
	if claims.Subject == "" {
		return nil, errors.New("token 缺少 sub")
	}

	return claims, nil
}
