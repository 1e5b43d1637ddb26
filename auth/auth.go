// Package auth holds password hashing and the token codecs shared by the
// mock backend and the HTTP server.
package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"artikel/models"
)

// Cost is the bcrypt work factor used for new passwords. Tests lower it.
var Cost = bcrypt.DefaultCost

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	return string(bytes), err
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// TokenCodec issues and parses session tokens. A token is valid when it
// parses back to the id of a still-existing user; existence is checked by
// the backend, not here.
type TokenCodec interface {
	Issue(user models.UserProfile) (string, error)
	Parse(token string) (int, error)
}

const mockTokenPrefix = "mock-token-"

// MockCodec encodes the user id directly into the token. This is the token
// format of the local mock backend and is part of its persisted-state
// contract.
type MockCodec struct{}

func (MockCodec) Issue(user models.UserProfile) (string, error) {
	return fmt.Sprintf("%s%d", mockTokenPrefix, user.ID), nil
}

func (MockCodec) Parse(token string) (int, error) {
	if !strings.HasPrefix(token, mockTokenPrefix) {
		return 0, models.ErrUnauthenticated
	}
	id, err := strconv.Atoi(strings.TrimPrefix(token, mockTokenPrefix))
	if err != nil || id <= 0 {
		return 0, models.ErrUnauthenticated
	}
	return id, nil
}

// JWTCodec signs opaque bearer tokens for the served API.
type JWTCodec struct {
	Secret []byte
	TTL    time.Duration
}

type jwtClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

func (c JWTCodec) Issue(user models.UserProfile) (string, error) {
	ttl := c.TTL
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Username: user.Username,
		Role:     user.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.Secret)
}

func (c JWTCodec) Parse(tokenString string) (int, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.Secret, nil
	})
	if err != nil {
		return 0, models.ErrUnauthenticated
	}
	claims, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid {
		return 0, models.ErrUnauthenticated
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id <= 0 {
		return 0, models.ErrUnauthenticated
	}
	return id, nil
}
