package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BusinessType represents the legal structure of a business
type BusinessType string

const (
	BusinessTypeSoleProprietorship BusinessType = "SOLE_PROPRIETORSHIP"
	BusinessTypePartnership        BusinessType = "PARTNERSHIP"
	BusinessTypeLLC                BusinessType = "LLC"
	BusinessTypeCorporation        BusinessType = "CORPORATION"
	BusinessTypeSCorporation       BusinessType = "S_CORPORATION"
	BusinessTypeNonProfit          BusinessType = "NON_PROFIT"
	BusinessTypeOther              BusinessType = "OTHER"
)

// BusinessTypes lists every accepted business type value.
var BusinessTypes = []BusinessType{
	BusinessTypeSoleProprietorship,
	BusinessTypePartnership,
	BusinessTypeLLC,
	BusinessTypeCorporation,
	BusinessTypeSCorporation,
	BusinessTypeNonProfit,
	BusinessTypeOther,
}

// ValidBusinessType reports whether t is one of the accepted enum values.
func ValidBusinessType(t BusinessType) bool {
	for _, v := range BusinessTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Business is the KYB onboarding record for a user. The row is keyed 1:1 to
// the user id; payment features stay locked until IsComplete reports true.
type Business struct {
	ID                              uuid.UUID    `json:"id"`
	Email                           string       `json:"email"`
	LegalName                       string       `json:"legalName"`
	Website                         string       `json:"website"`
	Description                     string       `json:"description"`
	BusinessType                    BusinessType `json:"businessType"`
	EIN                             string       `json:"ein"`
	Address                         string       `json:"address"`
	Phone                           string       `json:"phone"`
	IndustryMccCode                 string       `json:"industryMccCode"`
	AverageTransactionSize          *float64     `json:"averageTransactionSize"`
	AverageMonthlyTransactionVolume *float64     `json:"averageMonthlyTransactionVolume"`
	MaximumTransactionSize          *float64     `json:"maximumTransactionSize"`
	AcceptTermsOfService            *bool        `json:"acceptTermsOfService"`
	BillingEntityID                 *string      `json:"billing_entity_id,omitempty"`
}

// RepresentativeRole tags a representative as either an Owner or a
// Controller. The two roles are mutually exclusive at the data layer.
type RepresentativeRole string

const (
	RoleOwner      RepresentativeRole = "owner"
	RoleController RepresentativeRole = "controller"
)

// BusinessRepresentative is a natural person attached to a business for KYB
// verification. Owners carry an ownership percentage, controllers a job
// title; the role column makes the two shapes structurally exclusive.
type BusinessRepresentative struct {
	ID              uuid.UUID          `json:"id"`
	BusinessID      uuid.UUID          `json:"businessId"`
	LegalName       string             `json:"legalName"`
	PersonalAddress string             `json:"personalAddress"`
	Email           string             `json:"email"`
	DateOfBirth     time.Time          `json:"dateOfBirth"`
	FullSSN         string             `json:"-"`
	Role            RepresentativeRole `json:"role"`
	OwnershipPct    *int               `json:"ownershipPercentage,omitempty"`
	JobTitle        *string            `json:"jobTitle,omitempty"`
}

// MarshalJSON keeps the isOwner/isController flags the web client expects
// while the role stays a single column internally.
func (r BusinessRepresentative) MarshalJSON() ([]byte, error) {
	type alias BusinessRepresentative
	return json.Marshal(struct {
		alias
		IsOwner      bool `json:"isOwner"`
		IsController bool `json:"isController"`
	}{
		alias:        alias(r),
		IsOwner:      r.Role == RoleOwner,
		IsController: r.Role == RoleController,
	})
}
