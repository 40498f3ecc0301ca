package repository

import (
	"context"

	"healthbridge-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository handles database operations for healthcare documents
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new healthcare document record
func (r *DocumentRepository) Create(ctx context.Context, doc *models.HealthcareDocument) error {
	query := `
		INSERT INTO healthcare_documents (
			user_id, type, title, description, file_url, ocr_text, extracted_data
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		doc.UserID,
		doc.Type,
		doc.Title,
		doc.Description,
		doc.FileURL,
		doc.OCRText,
		doc.ExtractedData,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)

	return err
}

// GetByID retrieves a document by ID scoped to its owner. Rows belonging to
// another user are indistinguishable from missing rows.
func (r *DocumentRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.HealthcareDocument, error) {
	doc := &models.HealthcareDocument{}
	query := `
		SELECT id, user_id, type, title, description, file_url, ocr_text,
		       extracted_data, created_at, updated_at
		FROM healthcare_documents
		WHERE id = $1 AND user_id = $2`

	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Type,
		&doc.Title,
		&doc.Description,
		&doc.FileURL,
		&doc.OCRText,
		&doc.ExtractedData,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ListByUserID retrieves all documents for a user, oldest first
func (r *DocumentRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.HealthcareDocument, error) {
	query := `
		SELECT id, user_id, type, title, description, file_url, ocr_text,
		       extracted_data, created_at, updated_at
		FROM healthcare_documents
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.HealthcareDocument
	for rows.Next() {
		doc := &models.HealthcareDocument{}
		err := rows.Scan(
			&doc.ID,
			&doc.UserID,
			&doc.Type,
			&doc.Title,
			&doc.Description,
			&doc.FileURL,
			&doc.OCRText,
			&doc.ExtractedData,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}
