package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	models "github.com/nampd/membership-portal-go/models"
)

// SessionClaims identifies the acting user. Login is a mock email lookup
// with no password; the token only carries who is acting, not proof of
// identity.
type SessionClaims struct {
	Role  models.UserRole `json:"role"`
	State string          `json:"state"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for the given member.
func GenerateToken(m models.MemberProfile, secret string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		Role:  m.Role,
		State: m.State,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "nampd-portal",
			Subject:   m.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a session token and returns its claims.
func ParseToken(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
