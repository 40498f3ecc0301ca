package handlers

import (
	"net/http"

	"healthbridge-backend/onboarding"
	"healthbridge-backend/service"

	"github.com/gin-gonic/gin"
)

// BusinessHandler handles HTTP requests for KYB intake and onboarding
type BusinessHandler struct {
	businessService *service.BusinessService
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businessService *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

type kybRequest struct {
	Business        service.BusinessInput         `json:"business"`
	Representatives []service.RepresentativeInput `json:"representatives"`
}

// SaveKYB handles POST /api/business/kyb
func (h *BusinessHandler) SaveKYB(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	var req kybRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_PAYLOAD", "request body is not valid JSON")
		return
	}

	result, err := h.businessService.SaveKYB(c.Request.Context(), principal.ID, req.Business, req.Representatives)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, result)
}

// GetBusiness handles GET /api/business
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	business, err := h.businessService.GetBusiness(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, business)
}

// OnboardingRoute handles GET /api/onboarding/route?path=
//
// The SPA shell asks where the user belongs for a navigation target; an
// empty redirect means the requested path is allowed. A missing business
// row is treated as an incomplete submission, so brand-new users land on
// the intake form.
func (h *BusinessHandler) OnboardingRoute(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	path := c.Query("path")
	if path == "" {
		path = onboarding.PathDashboard
	}

	business, err := h.businessService.GetBusiness(c.Request.Context(), principal.ID)
	if err != nil {
		business = nil
	}

	respondData(c, http.StatusOK, gin.H{
		"path":     path,
		"redirect": onboarding.Decide(business, path),
		"complete": onboarding.IsComplete(business),
	})
}
