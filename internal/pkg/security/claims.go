package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// SubjectClaims 身份提供方签发的 Token，只关心 sub
type SubjectClaims struct {
	jwt.RegisteredClaims
}
