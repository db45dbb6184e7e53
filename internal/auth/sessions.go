// Package auth issues and verifies session tokens. A session is an
// HMAC-signed JWT carrying the caller's username, display name and role; it
// travels in a cookie (or a Bearer header) and is the only thing the core
// ever learns about the caller.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pitwall/internal/models"
)

var ErrInvalidToken = errors.New("invalid session token")

type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func New(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl}
}

// TTL is exposed so the HTTP layer can align the cookie lifetime.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given roster user.
func (s *Sessions) Issue(u models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.Username,
		"name": u.Name,
		"role": u.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies a token and extracts the caller identity. Any failure,
// including an unexpected signing method, is ErrInvalidToken.
func (s *Sessions) Parse(tokenString string) (models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return models.Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}, ErrInvalidToken
	}

	username, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if username == "" {
		return models.Identity{}, ErrInvalidToken
	}

	return models.Identity{Username: username, Name: name, Role: role}, nil
}
