// Package auth implements the single-learner authentication for the API:
// bcrypt password verification and JWT bearer tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Authentication errors.
var (
	// ErrInvalidCredentials is returned when the supplied password does not
	// match the configured hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a token fails parsing or signature
	// verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

// learnerSubject is the only principal this API knows.
const learnerSubject = "learner"

// Service issues and validates bearer tokens for the single configured
// learner.
type Service struct {
	secret        []byte
	passwordHash  string
	tokenLifetime time.Duration

	// now is swapped out in tests.
	now func() time.Time
}

// NewService creates an auth Service. secret signs tokens (HMAC-SHA256);
// passwordHash is the bcrypt hash of the learner's password.
func NewService(secret string, passwordHash string, tokenLifetime time.Duration) *Service {
	if secret == "" {
		panic("secret cannot be empty")
	}
	if tokenLifetime <= 0 {
		tokenLifetime = 24 * time.Hour
	}

	return &Service{
		secret:        []byte(secret),
		passwordHash:  passwordHash,
		tokenLifetime: tokenLifetime,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Login verifies the password against the configured hash and returns a
// signed token. Returns ErrInvalidCredentials on mismatch; the caller must
// not distinguish wrong password from unconfigured hash.
func (s *Service) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.generateToken()
}

func (s *Service) generateToken() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   learnerSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a bearer token, returning its subject.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
