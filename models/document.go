package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DocumentType classifies an uploaded healthcare document
type DocumentType string

const (
	DocumentTypePrescription      DocumentType = "prescription"
	DocumentTypeLabReport         DocumentType = "lab_report"
	DocumentTypeImagingReport     DocumentType = "imaging_report"
	DocumentTypeVaccinationRecord DocumentType = "vaccination_record"
	DocumentTypeInsuranceCard     DocumentType = "insurance_card"
	DocumentTypeOther             DocumentType = "other"
)

// ValidDocumentType reports whether t is one of the accepted enum values.
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentTypePrescription, DocumentTypeLabReport, DocumentTypeImagingReport,
		DocumentTypeVaccinationRecord, DocumentTypeInsuranceCard, DocumentTypeOther:
		return true
	}
	return false
}

// ExtractedData holds structured fields pulled out of a document during OCR
type ExtractedData map[string]interface{}

// Value implements driver.Valuer for JSONB
func (e ExtractedData) Value() (driver.Value, error) {
	if e == nil {
		return nil, nil
	}
	return json.Marshal(e)
}

// Scan implements sql.Scanner for JSONB
func (e *ExtractedData) Scan(value interface{}) error {
	if value == nil {
		*e = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*e = make(ExtractedData)
		return nil
	}

	if len(bytes) == 0 {
		*e = make(ExtractedData)
		return nil
	}

	return json.Unmarshal(bytes, e)
}

// HealthcareDocument is an uploaded medical document after the OCR pipeline
// has finished. Rows only exist for uploads where storage and OCR both
// succeeded, and are immutable afterwards.
type HealthcareDocument struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"user_id"`
	Type          DocumentType  `json:"type"`
	Title         string        `json:"title"`
	Description   *string       `json:"description,omitempty"`
	FileURL       string        `json:"fileUrl"`
	OCRText       *string       `json:"ocrText,omitempty"`
	ExtractedData ExtractedData `json:"extractedData,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
