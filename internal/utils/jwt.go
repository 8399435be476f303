package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims custom claims for JWT
type JWTClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// JWTUtil issues and validates the short-lived access token and the
// long-lived refresh token, each signed with its own secret.
type JWTUtil struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTUtil creates a new JWTUtil
func NewJWTUtil(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTUtil {
	return &JWTUtil{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (ju *JWTUtil) generate(userID int64, role, name, secret string, ttl time.Duration) (string, error) {
	claims := &JWTClaims{
		UserID: userID,
		Role:   role,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// GenerateAccessToken generates a new short-lived access token
func (ju *JWTUtil) GenerateAccessToken(userID int64, role, name string) (string, error) {
	return ju.generate(userID, role, name, ju.accessSecret, ju.accessTTL)
}

// GenerateRefreshToken generates a new long-lived refresh token
func (ju *JWTUtil) GenerateRefreshToken(userID int64, role, name string) (string, error) {
	return ju.generate(userID, role, name, ju.refreshSecret, ju.refreshTTL)
}

// RefreshTTL returns the refresh token lifetime, for cookie max-age.
func (ju *JWTUtil) RefreshTTL() time.Duration {
	return ju.refreshTTL
}

func (ju *JWTUtil) validate(tokenString, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// ValidateAccessToken validates an access token
func (ju *JWTUtil) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	return ju.validate(tokenString, ju.accessSecret)
}

// ValidateRefreshToken validates a refresh token
func (ju *JWTUtil) ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	return ju.validate(tokenString, ju.refreshSecret)
}
