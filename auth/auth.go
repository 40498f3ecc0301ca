// Package auth resolves the authenticated principal from the session token
// issued by the external auth provider. No credentials are stored locally;
// the server only verifies the provider's HS256 signature and trusts the
// identity inside it.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingToken  = errors.New("missing session token")
	ErrInvalidToken  = errors.New("invalid session token")
	ErrExpiredToken  = errors.New("session token has expired")
	ErrInvalidClaims = errors.New("invalid session claims")
)

// Claims are the session claims the gate consumes
type Claims struct {
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Principal is the authenticated user resolved from a session
type Principal struct {
	ID    uuid.UUID
	Email string
	Name  *string
}

// SessionValidator verifies provider session tokens
type SessionValidator struct {
	secret []byte
}

// NewSessionValidator creates a validator for HS256 session tokens
func NewSessionValidator(secret string) *SessionValidator {
	return &SessionValidator{secret: []byte(secret)}
}

// Validate parses and verifies a session token and returns the principal
func (v *SessionValidator) Validate(tokenString string) (*Principal, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidClaims)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrInvalidClaims)
	}

	return &Principal{ID: userID, Email: claims.Email, Name: claims.Name}, nil
}

// TokenMinter signs short-lived tokens for downstream widgets
type TokenMinter struct {
	secret []byte
}

// NewTokenMinter creates a minter signing with the given HS256 secret
func NewTokenMinter(secret string) *TokenMinter {
	return &TokenMinter{secret: []byte(secret)}
}

// Mint signs a token for the given subject with the given lifetime. Extra
// claims are merged alongside the registered ones.
func (m *TokenMinter) Mint(subject string, ttl time.Duration, extra map[string]interface{}) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(ttl)),
	}
	for k, v := range extra {
		claims[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
