package repository

import (
	"context"

	"healthbridge-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConditionRepository handles database operations for medical conditions
type ConditionRepository struct {
	db *pgxpool.Pool
}

// NewConditionRepository creates a new condition repository
func NewConditionRepository(db *pgxpool.Pool) *ConditionRepository {
	return &ConditionRepository{db: db}
}

// Create creates a new medical condition record
func (r *ConditionRepository) Create(ctx context.Context, condition *models.MedicalCondition) error {
	query := `
		INSERT INTO medical_conditions (
			user_id, name, description, diagnosis_date, severity, status, medications
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		condition.UserID,
		condition.Name,
		condition.Description,
		condition.DiagnosisDate,
		condition.Severity,
		condition.Status,
		condition.Medications,
	).Scan(&condition.ID, &condition.CreatedAt)

	return err
}

// ListByUserID retrieves all conditions for a user, oldest first
func (r *ConditionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.MedicalCondition, error) {
	query := `
		SELECT id, user_id, name, description, diagnosis_date, severity, status,
		       medications, created_at
		FROM medical_conditions
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conditions []*models.MedicalCondition
	for rows.Next() {
		condition := &models.MedicalCondition{}
		err := rows.Scan(
			&condition.ID,
			&condition.UserID,
			&condition.Name,
			&condition.Description,
			&condition.DiagnosisDate,
			&condition.Severity,
			&condition.Status,
			&condition.Medications,
			&condition.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, condition)
	}

	return conditions, rows.Err()
}
