package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GameClaims binds a client to one game session.
type GameClaims struct {
	GameID string `json:"game_id"`
	jwt.RegisteredClaims
}

// GenerateGameToken creates a signed token for gameID that expires after ttl
func GenerateGameToken(secret, gameID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &GameClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateGameToken validates a game token and returns its claims
func ValidateGameToken(secret, tokenString string) (*GameClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &GameClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*GameClaims); ok && token.Valid && claims.GameID != "" {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
