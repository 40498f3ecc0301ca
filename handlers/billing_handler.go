package handlers

import (
	"net/http"
	"time"

	"healthbridge-backend/auth"

	"github.com/gin-gonic/gin"
)

// BillingHandler mints short-lived tokens for the embedded billing widget
type BillingHandler struct {
	businesses BusinessFinder
	minter     *auth.TokenMinter
	tokenTTL   time.Duration
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(businesses BusinessFinder, minter *auth.TokenMinter, tokenTTL time.Duration) *BillingHandler {
	return &BillingHandler{
		businesses: businesses,
		minter:     minter,
		tokenTTL:   tokenTTL,
	}
}

// Token handles GET /api/billing/token
//
// The token's subject is the billing entity resolved from the caller's
// business row; a business without a provisioned entity cannot use the
// widget yet.
func (h *BillingHandler) Token(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	business, err := h.businesses.GetByID(c.Request.Context(), principal.ID)
	if err != nil {
		respondErrorCode(c, http.StatusNotFound, "NOT_FOUND", "business not found")
		return
	}
	if business.BillingEntityID == nil || *business.BillingEntityID == "" {
		respondErrorCode(c, http.StatusNotFound, "NO_BILLING_ENTITY", "no billing entity provisioned for this business")
		return
	}

	token, err := h.minter.Mint(*business.BillingEntityID, h.tokenTTL, map[string]interface{}{
		"scope": "billing-widget",
	})
	if err != nil {
		respondErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": int(h.tokenTTL.Seconds()),
	})
}
