package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles the session surface the backend owns. Login belongs
// to the external identity provider; this side only tears sessions down.
type AuthHandler struct {
	cookieName   string
	secureCookie bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cookieName string, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		cookieName:   cookieName,
		secureCookie: secureCookie,
	}
}

// SignOut handles POST /api/auth/signout
func (h *AuthHandler) SignOut(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
	respondData(c, http.StatusOK, gin.H{"signedOut": true})
}
