package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ConditionMedication is a medication noted inline on a condition record
type ConditionMedication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

// ConditionMedications represents the medications embedded on a condition
type ConditionMedications []ConditionMedication

// Value implements driver.Valuer for JSONB
func (c ConditionMedications) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB
func (c *ConditionMedications) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*c = make(ConditionMedications, 0)
		return nil
	}

	if len(bytes) == 0 {
		*c = make(ConditionMedications, 0)
		return nil
	}

	return json.Unmarshal(bytes, c)
}

// MedicalCondition is a diagnosed condition tracked by a user
type MedicalCondition struct {
	ID            uuid.UUID            `json:"id"`
	UserID        uuid.UUID            `json:"user_id"`
	Name          string               `json:"name"`
	Description   *string              `json:"description,omitempty"`
	DiagnosisDate *time.Time           `json:"diagnosisDate,omitempty"`
	Severity      *string              `json:"severity,omitempty"`
	Status        *string              `json:"status,omitempty"`
	Medications   ConditionMedications `json:"medications,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}
