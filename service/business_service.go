package service

import (
	"context"
	"errors"
	"time"

	"healthbridge-backend/apperrors"
	"healthbridge-backend/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BusinessStore is the persistence surface the KYB service needs
type BusinessStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error)
	SaveKYB(ctx context.Context, business *models.Business, reps []*models.BusinessRepresentative) (*models.Business, []*models.BusinessRepresentative, error)
}

// BusinessService handles KYB intake and business lookups
type BusinessService struct {
	store    BusinessStore
	validate *validator.Validate
}

// BusinessServiceOption is a functional option for BusinessService
type BusinessServiceOption func(*BusinessService)

// BusinessWithStore sets the business store
func BusinessWithStore(store BusinessStore) BusinessServiceOption {
	return func(s *BusinessService) {
		s.store = store
	}
}

// NewBusinessService creates a new business service
func NewBusinessService(opts ...BusinessServiceOption) *BusinessService {
	s := &BusinessService{
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BusinessInput is the KYB business payload
type BusinessInput struct {
	LegalName                       string   `json:"legalName" validate:"required"`
	Website                         string   `json:"website" validate:"omitempty,url"`
	Description                     string   `json:"description"`
	BusinessType                    string   `json:"businessType" validate:"omitempty,oneof=SOLE_PROPRIETORSHIP PARTNERSHIP LLC CORPORATION S_CORPORATION NON_PROFIT OTHER"`
	EIN                             string   `json:"ein"`
	Address                         string   `json:"address"`
	Phone                           string   `json:"phone"`
	IndustryMccCode                 string   `json:"industryMccCode"`
	AverageTransactionSize          *float64 `json:"averageTransactionSize" validate:"omitempty,gt=0"`
	AverageMonthlyTransactionVolume *float64 `json:"averageMonthlyTransactionVolume" validate:"omitempty,gt=0"`
	MaximumTransactionSize          *float64 `json:"maximumTransactionSize" validate:"omitempty,gt=0"`
	AcceptTermsOfService            bool     `json:"acceptTermsOfService"`
	Email                           string   `json:"email" validate:"omitempty,email"`
}

// RepresentativeInput is one KYB representative payload. The isOwner and
// isController flags match the intake form; exactly one must be set.
type RepresentativeInput struct {
	LegalName       string    `json:"legalName" validate:"required"`
	PersonalAddress string    `json:"personalAddress" validate:"required"`
	Email           string    `json:"email" validate:"required,email"`
	DateOfBirth     time.Time `json:"dateOfBirth" validate:"required"`
	FullSSN         string    `json:"fullSSN" validate:"required"`
	IsOwner         bool      `json:"isOwner"`
	OwnershipPct    *int      `json:"ownershipPercentage" validate:"omitempty,gte=0,lte=100"`
	IsController    bool      `json:"isController"`
	JobTitle        *string   `json:"jobTitle"`
}

// SaveKYBResult is what a successful submission returns
type SaveKYBResult struct {
	Business        *models.Business                 `json:"business"`
	Representatives []*models.BusinessRepresentative `json:"representatives"`
}

// SaveKYB validates the full intake payload and persists the business row
// together with its representatives atomically. No write happens unless
// every representative passes validation.
func (s *BusinessService) SaveKYB(
	ctx context.Context,
	userID uuid.UUID,
	business BusinessInput,
	reps []RepresentativeInput,
) (*SaveKYBResult, error) {
	if err := s.validate.Struct(business); err != nil {
		return nil, apperrors.Validation("invalid business payload: " + err.Error())
	}

	repModels := make([]*models.BusinessRepresentative, 0, len(reps))
	for i := range reps {
		rep, err := s.buildRepresentative(&reps[i])
		if err != nil {
			return nil, err
		}
		repModels = append(repModels, rep)
	}

	model := &models.Business{
		ID:                              userID,
		Email:                           business.Email,
		LegalName:                       business.LegalName,
		Website:                         business.Website,
		Description:                     business.Description,
		BusinessType:                    models.BusinessType(business.BusinessType),
		EIN:                             business.EIN,
		Address:                         business.Address,
		Phone:                           business.Phone,
		IndustryMccCode:                 business.IndustryMccCode,
		AverageTransactionSize:          business.AverageTransactionSize,
		AverageMonthlyTransactionVolume: business.AverageMonthlyTransactionVolume,
		MaximumTransactionSize:          business.MaximumTransactionSize,
		AcceptTermsOfService:            &business.AcceptTermsOfService,
	}

	updated, inserted, err := s.store.SaveKYB(ctx, model, repModels)
	if err != nil {
		return nil, apperrors.Internal("failed to save KYB submission", err)
	}

	return &SaveKYBResult{Business: updated, Representatives: inserted}, nil
}

// buildRepresentative validates one representative and maps the intake
// flags onto the owner/controller role union.
func (s *BusinessService) buildRepresentative(in *RepresentativeInput) (*models.BusinessRepresentative, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperrors.Validation("invalid representative: " + err.Error())
	}

	rep := &models.BusinessRepresentative{
		LegalName:       in.LegalName,
		PersonalAddress: in.PersonalAddress,
		Email:           in.Email,
		DateOfBirth:     in.DateOfBirth,
		FullSSN:         in.FullSSN,
	}

	switch {
	case in.IsOwner && in.IsController:
		return nil, apperrors.Validation("representative cannot be both owner and controller")
	case in.IsOwner:
		if in.OwnershipPct == nil {
			return nil, apperrors.Validation("ownership percentage is required for owners")
		}
		rep.Role = models.RoleOwner
		rep.OwnershipPct = in.OwnershipPct
	case in.IsController:
		if in.JobTitle == nil || *in.JobTitle == "" {
			return nil, apperrors.Validation("job title is required for controllers")
		}
		rep.Role = models.RoleController
		rep.JobTitle = in.JobTitle
	default:
		return nil, apperrors.Validation("representative must be an owner or a controller")
	}

	return rep, nil
}

// GetBusiness returns the business row for a user
func (s *BusinessService) GetBusiness(ctx context.Context, userID uuid.UUID) (*models.Business, error) {
	business, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("business not found")
		}
		return nil, apperrors.Internal("failed to load business", err)
	}
	return business, nil
}
