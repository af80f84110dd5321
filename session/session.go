// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/meetup-poll/models"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrNoIdentity   = errors.New("token carries no user id")
)

// Manager verifies session tokens issued by the identity provider. The
// shared HMAC secret is the service's half of that contract.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Parse verifies a token and extracts the user identity. Expiry is
// enforced by the JWT library; any parse or signature failure maps to
// ErrInvalidToken so callers never branch on library internals.
func (m *Manager) Parse(tokenString string) (models.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return models.User{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.User{}, ErrInvalidToken
	}

	id, _ := claims["id"].(string)
	if id == "" {
		// Some providers use the standard subject claim instead
		id, _ = claims["sub"].(string)
	}
	if id == "" {
		return models.User{}, ErrNoIdentity
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return models.User{ID: id, Email: email, Name: name}, nil
}

// Issue signs a token for a user. The production identity provider does
// this itself; Issue exists for tests and local development.
func (m *Manager) Issue(user models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
