package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var JWTSecret []byte

// SessionTTL is the absolute lifetime of a staff session.
const SessionTTL = 8 * time.Hour

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Development fallback only; production sets JWT_SECRET.
		secret = "GlimpseDevSecret2024"
	}
	JWTSecret = []byte(secret)
}

type SessionClaims struct {
	StaffID   uint   `json:"staff_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a session for a staff member. The token is
// the bearer credential for every authenticated call; expiry is encoded
// in the claims so clients can show a countdown without another call.
func GenerateSessionToken(staffID uint, role string) (string, time.Time, error) {
	expiresAt := time.Now().Add(SessionTTL)
	claims := &SessionClaims{
		StaffID:   staffID,
		Role:      role,
		SessionID: uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "glimpse",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JWTSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
