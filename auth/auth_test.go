package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "session-secret-for-tests"

func signSession(t *testing.T, secret string, userID uuid.UUID, email string, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidate(t *testing.T) {
	v := NewSessionValidator(testSecret)
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		token := signSession(t, testSecret, userID, "pat@example.com", time.Hour)

		p, err := v.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, userID, p.ID)
		assert.Equal(t, "pat@example.com", p.Email)
	})

	t.Run("bearer prefix stripped", func(t *testing.T) {
		token := signSession(t, testSecret, userID, "pat@example.com", time.Hour)

		p, err := v.Validate("Bearer " + token)
		require.NoError(t, err)
		assert.Equal(t, userID, p.ID)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := v.Validate("")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signSession(t, "some-other-secret", userID, "pat@example.com", time.Hour)

		_, err := v.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signSession(t, testSecret, userID, "pat@example.com", -time.Minute)

		_, err := v.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("subject not a uuid", func(t *testing.T) {
		claims := Claims{
			Email: "pat@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "not-a-uuid",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = v.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("missing email", func(t *testing.T) {
		claims := Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.NewString(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = v.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}

func TestMint(t *testing.T) {
	m := NewTokenMinter("billing-secret")

	signed, err := m.Mint("entity-123", 5*time.Minute, map[string]interface{}{"entityId": "entity-123"})
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("billing-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "entity-123", claims["sub"])
	assert.Equal(t, "entity-123", claims["entityId"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), exp.Time, 10*time.Second)
}
