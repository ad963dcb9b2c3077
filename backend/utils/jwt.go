package utils

import (
	"errors"
	"fmt"
	"time"

	"bearinmind/backend/config"

	"github.com/golang-jwt/jwt/v4"
)

// Claims identify the logged in user. The subject is the username.
type Claims struct {
	UserID      int64    `json:"usid"`
	Locale      string   `json:"locl"`
	Authorities []string `json:"auth"`
	jwt.RegisteredClaims
}

func GenerateToken(cfg *config.Config, username string, userID int64, locale string, authorities []string, now time.Time) (string, error) {
	claims := Claims{
		UserID:      userID,
		Locale:      locale,
		Authorities: authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWTLifetime())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func ParseToken(cfg *config.Config, tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == 0 || claims.Subject == "" {
		return nil, errors.New("token has no user")
	}
	return &claims, nil
}
