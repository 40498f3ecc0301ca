// Package onboarding decides where an authenticated request may go based on
// the completeness of the user's KYB business record. Decisions are pure
// functions over the business row and the request path so they can be tested
// without cookies or a database.
package onboarding

import (
	"strings"

	"healthbridge-backend/models"

	"github.com/google/uuid"
)

// Paths the gate routes between
const (
	PathLogin     = "/auth/login"
	PathIntake    = "/kyb-intake"
	PathDashboard = "/dashboard"
)

// IsComplete reports whether every field required for KYB approval is
// present on the business. A nil business is never complete.
func IsComplete(b *models.Business) bool {
	if b == nil {
		return false
	}

	required := []bool{
		b.ID != uuid.Nil,
		b.LegalName != "",
		b.Website != "",
		b.Description != "",
		b.EIN != "",
		b.Address != "",
		b.Phone != "",
		b.IndustryMccCode != "",
		b.AverageTransactionSize != nil && *b.AverageTransactionSize != 0,
		b.AverageMonthlyTransactionVolume != nil && *b.AverageMonthlyTransactionVolume != 0,
		b.MaximumTransactionSize != nil && *b.MaximumTransactionSize != 0,
		b.AcceptTermsOfService != nil && *b.AcceptTermsOfService,
		b.Email != "",
		b.BusinessType != "",
	}

	for _, ok := range required {
		if !ok {
			return false
		}
	}
	return true
}

// Decide returns the path the request should be redirected to, or "" when
// the request may proceed. A missing business row counts as incomplete, so
// a transiently failing lookup fails closed toward the intake flow.
func Decide(b *models.Business, path string) string {
	path = strings.ToLower(path)

	switch {
	case strings.HasPrefix(path, PathLogin):
		return ""
	case !strings.HasPrefix(path, PathIntake) && !IsComplete(b):
		return PathIntake
	case strings.HasPrefix(path, PathIntake) && IsComplete(b):
		return PathDashboard
	}
	return ""
}
