package repository

import (
	"context"

	"healthbridge-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MemoryRepository handles database operations for user memories
type MemoryRepository struct {
	db *pgxpool.Pool
}

// NewMemoryRepository creates a new memory repository
func NewMemoryRepository(db *pgxpool.Pool) *MemoryRepository {
	return &MemoryRepository{db: db}
}

// Create creates a new memory record
func (r *MemoryRepository) Create(ctx context.Context, mem *models.Memory) error {
	query := `
		INSERT INTO memory (user_id, memory)
		VALUES ($1, $2)
		RETURNING id, created_at`

	return r.db.QueryRow(ctx, query, mem.UserID, mem.Memory).Scan(&mem.ID, &mem.CreatedAt)
}

// ListByUserID retrieves all memories for a user, oldest first
func (r *MemoryRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Memory, error) {
	query := `
		SELECT id, user_id, memory, created_at
		FROM memory
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memories []*models.Memory
	for rows.Next() {
		mem := &models.Memory{}
		if err := rows.Scan(&mem.ID, &mem.UserID, &mem.Memory, &mem.CreatedAt); err != nil {
			return nil, err
		}
		memories = append(memories, mem)
	}

	return memories, rows.Err()
}

// Delete removes a memory scoped to its owner. Returns pgx.ErrNoRows when
// the row is missing or owned by someone else.
func (r *MemoryRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM memory WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
