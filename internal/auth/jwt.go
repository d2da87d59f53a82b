package auth

import (
	"errors"
	"time"

	"gogett/config"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	CourierID uint   `json:"courier_id"`
	PublicID  string `json:"public_id"`
	jwt.RegisteredClaims
}

func GenerateAccessToken(cfg *config.JWTConfig, courierID uint, publicID string) (string, error) {
	claims := Claims{
		CourierID: courierID,
		PublicID:  publicID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   publicID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.Expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    cfg.Issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

var ErrInvalidToken = errors.New("invalid token")

func ParseAccessToken(cfg *config.JWTConfig, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
