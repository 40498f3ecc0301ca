package repository

import (
	"context"

	"healthbridge-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MedicationRepository handles database operations for medications
type MedicationRepository struct {
	db *pgxpool.Pool
}

// NewMedicationRepository creates a new medication repository
func NewMedicationRepository(db *pgxpool.Pool) *MedicationRepository {
	return &MedicationRepository{db: db}
}

// Create creates a new medication record
func (r *MedicationRepository) Create(ctx context.Context, med *models.Medication) error {
	query := `
		INSERT INTO medications (
			user_id, name, dosage, frequency, start_date, active
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		med.UserID,
		med.Name,
		med.Dosage,
		med.Frequency,
		med.StartDate,
		med.Active,
	).Scan(&med.ID, &med.CreatedAt, &med.UpdatedAt)

	return err
}

// ListByUserID retrieves all medications for a user, oldest first
func (r *MedicationRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Medication, error) {
	query := `
		SELECT id, user_id, name, dosage, frequency, start_date, active,
		       created_at, updated_at
		FROM medications
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []*models.Medication
	for rows.Next() {
		med := &models.Medication{}
		err := rows.Scan(
			&med.ID,
			&med.UserID,
			&med.Name,
			&med.Dosage,
			&med.Frequency,
			&med.StartDate,
			&med.Active,
			&med.CreatedAt,
			&med.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		meds = append(meds, med)
	}

	return meds, rows.Err()
}

// Update replaces all mutable fields of a medication, scoped to its owner.
// Returns pgx.ErrNoRows when the row is missing or owned by someone else.
func (r *MedicationRepository) Update(ctx context.Context, med *models.Medication) error {
	query := `
		UPDATE medications
		SET name = $3, dosage = $4, frequency = $5, start_date = $6,
		    active = $7, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at`

	return r.db.QueryRow(
		ctx, query,
		med.ID,
		med.UserID,
		med.Name,
		med.Dosage,
		med.Frequency,
		med.StartDate,
		med.Active,
	).Scan(&med.CreatedAt, &med.UpdatedAt)
}
