package adminauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 12 * time.Hour

// Claims identifies the authenticated admin. The claims are signed, not
// encrypted: they carry nothing worth hiding, just a single role issued to
// a single operator account.
type Claims struct {
	Subject string `json:"sub"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates admin session tokens.
type TokenManager struct {
	signingKey []byte
}

func NewTokenManager(signingKey []byte) *TokenManager {
	return &TokenManager{signingKey: signingKey}
}

func (tm *TokenManager) Issue(subject string) (string, error) {
	now := time.Now()
	claims := Claims{
		Subject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.signingKey)
}

func (tm *TokenManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("adminauth: unexpected signing method %v", token.Header["alg"])
		}
		return tm.signingKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("adminauth: invalid token")
	}
	return claims, nil
}
