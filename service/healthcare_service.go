package service

import (
	"context"
	"errors"
	"time"

	"healthbridge-backend/apperrors"
	"healthbridge-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ConditionStore is the persistence surface for medical conditions
type ConditionStore interface {
	Create(ctx context.Context, condition *models.MedicalCondition) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.MedicalCondition, error)
}

// MedicationStore is the persistence surface for medications
type MedicationStore interface {
	Create(ctx context.Context, med *models.Medication) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Medication, error)
	Update(ctx context.Context, med *models.Medication) error
}

// HealthcareService handles condition and medication records
type HealthcareService struct {
	conditions  ConditionStore
	medications MedicationStore
}

// HealthcareServiceOption is a functional option for HealthcareService
type HealthcareServiceOption func(*HealthcareService)

// HealthcareWithConditionStore sets the condition store
func HealthcareWithConditionStore(store ConditionStore) HealthcareServiceOption {
	return func(s *HealthcareService) {
		s.conditions = store
	}
}

// HealthcareWithMedicationStore sets the medication store
func HealthcareWithMedicationStore(store MedicationStore) HealthcareServiceOption {
	return func(s *HealthcareService) {
		s.medications = store
	}
}

// NewHealthcareService creates a new healthcare service
func NewHealthcareService(opts ...HealthcareServiceOption) *HealthcareService {
	s := &HealthcareService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConditionInput is a new medical condition payload
type ConditionInput struct {
	Name          string                      `json:"name" binding:"required"`
	Description   *string                     `json:"description"`
	DiagnosisDate *time.Time                  `json:"diagnosisDate"`
	Severity      *string                     `json:"severity"`
	Status        *string                     `json:"status"`
	Medications   models.ConditionMedications `json:"medications"`
}

// AddCondition creates a condition for the user
func (s *HealthcareService) AddCondition(ctx context.Context, userID uuid.UUID, input ConditionInput) (*models.MedicalCondition, error) {
	if input.Name == "" {
		return nil, apperrors.Validation("name is required")
	}

	condition := &models.MedicalCondition{
		UserID:        userID,
		Name:          input.Name,
		Description:   input.Description,
		DiagnosisDate: input.DiagnosisDate,
		Severity:      input.Severity,
		Status:        input.Status,
		Medications:   input.Medications,
	}
	if err := s.conditions.Create(ctx, condition); err != nil {
		return nil, apperrors.Internal("failed to save condition", err)
	}

	return condition, nil
}

// GetConditions lists the user's conditions, oldest first
func (s *HealthcareService) GetConditions(ctx context.Context, userID uuid.UUID) ([]*models.MedicalCondition, error) {
	conditions, err := s.conditions.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list conditions", err)
	}
	return conditions, nil
}

// MedicationInput is a medication payload, used for both create and the
// full-field replace on update
type MedicationInput struct {
	Name      string `json:"name" binding:"required"`
	Dosage    string `json:"dosage" binding:"required"`
	Frequency string `json:"frequency" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	Active    bool   `json:"active"`
}

func (in *MedicationInput) validate() error {
	if in.Name == "" || in.Dosage == "" || in.Frequency == "" || in.StartDate == "" {
		return apperrors.Validation("name, dosage, frequency and startDate are required")
	}
	return nil
}

// AddMedication creates a medication for the user
func (s *HealthcareService) AddMedication(ctx context.Context, userID uuid.UUID, input MedicationInput) (*models.Medication, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	med := &models.Medication{
		UserID:    userID,
		Name:      input.Name,
		Dosage:    input.Dosage,
		Frequency: input.Frequency,
		StartDate: input.StartDate,
		Active:    input.Active,
	}
	if err := s.medications.Create(ctx, med); err != nil {
		return nil, apperrors.Internal("failed to save medication", err)
	}

	return med, nil
}

// GetMedications lists the user's medications, oldest first
func (s *HealthcareService) GetMedications(ctx context.Context, userID uuid.UUID) ([]*models.Medication, error) {
	meds, err := s.medications.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list medications", err)
	}
	return meds, nil
}

// UpdateMedication replaces all fields of an owned medication
func (s *HealthcareService) UpdateMedication(ctx context.Context, id, userID uuid.UUID, input MedicationInput) (*models.Medication, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	med := &models.Medication{
		ID:        id,
		UserID:    userID,
		Name:      input.Name,
		Dosage:    input.Dosage,
		Frequency: input.Frequency,
		StartDate: input.StartDate,
		Active:    input.Active,
	}
	if err := s.medications.Update(ctx, med); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("medication not found")
		}
		return nil, apperrors.Internal("failed to update medication", err)
	}

	return med, nil
}
