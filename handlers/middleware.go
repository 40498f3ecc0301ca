package handlers

import (
	"context"
	"net/http"

	"healthbridge-backend/auth"
	"healthbridge-backend/models"
	"healthbridge-backend/onboarding"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const principalKey = "principal"

// UserMirror keeps the local users table in sync with the auth provider
type UserMirror interface {
	Ensure(ctx context.Context, user *models.User) error
}

// BusinessFinder looks up the caller's business row
type BusinessFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error)
}

// RequireSession validates the session token and attaches the principal to
// the request. The token comes from the session cookie, with an
// Authorization bearer fallback for non-browser clients. The identity is
// mirrored into the local users row on every authenticated request; the
// insert is a no-op when the row exists.
func RequireSession(validator *auth.SessionValidator, users UserMirror, cookieName string, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			token = c.GetHeader("Authorization")
		}
		if token == "" {
			respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
			c.Abort()
			return
		}

		principal, err := validator.Validate(token)
		if err != nil {
			respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid or expired session")
			c.Abort()
			return
		}

		user := &models.User{
			ID:    principal.ID,
			Name:  principal.Name,
			Email: principal.Email,
		}
		if err := users.Ensure(c.Request.Context(), user); err != nil {
			logger.Error().Err(err).Str("user", principal.ID.String()).Msg("failed to mirror user")
			respondErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireOnboarded blocks routes that need a completed KYB submission. A
// failed business lookup fails closed: the caller is treated as not yet
// onboarded.
func RequireOnboarded(businesses BusinessFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := currentPrincipal(c)
		if principal == nil {
			respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
			c.Abort()
			return
		}

		business, err := businesses.GetByID(c.Request.Context(), principal.ID)
		if err != nil || !onboarding.IsComplete(business) {
			respondErrorCode(c, http.StatusForbidden, "ONBOARDING_INCOMPLETE", "KYB onboarding must be completed first")
			c.Abort()
			return
		}

		c.Next()
	}
}

// currentPrincipal returns the authenticated principal, or nil outside a
// RequireSession-guarded route
func currentPrincipal(c *gin.Context) *auth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	principal, ok := v.(*auth.Principal)
	if !ok {
		return nil
	}
	return principal
}
