package repository

import (
	"context"

	"healthbridge-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConversationRepository handles database operations for conversations and
// their messages
type ConversationRepository struct {
	db *pgxpool.Pool
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Create creates an empty conversation for a user
func (r *ConversationRepository) Create(ctx context.Context, userID uuid.UUID) (*models.Conversation, error) {
	conv := &models.Conversation{UserID: userID}
	query := `
		INSERT INTO conversations (user_id)
		VALUES ($1)
		RETURNING id, last_updated`

	err := r.db.QueryRow(ctx, query, userID).Scan(&conv.ID, &conv.LastUpdated)
	if err != nil {
		return nil, err
	}

	return conv, nil
}

// GetByID retrieves a conversation scoped to its owner
func (r *ConversationRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Conversation, error) {
	conv := &models.Conversation{}
	query := `
		SELECT id, user_id, last_updated
		FROM conversations
		WHERE id = $1 AND user_id = $2`

	err := r.db.QueryRow(ctx, query, id, userID).Scan(&conv.ID, &conv.UserID, &conv.LastUpdated)
	if err != nil {
		return nil, err
	}

	return conv, nil
}

// ListByUserID retrieves all conversations for a user, most recently
// updated first
func (r *ConversationRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Conversation, error) {
	query := `
		SELECT id, user_id, last_updated
		FROM conversations
		WHERE user_id = $1
		ORDER BY last_updated DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*models.Conversation
	for rows.Next() {
		conv := &models.Conversation{}
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.LastUpdated); err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}

	return convs, rows.Err()
}

// Touch bumps a conversation's last_updated timestamp
func (r *ConversationRepository) Touch(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE conversations SET last_updated = now() WHERE id = $1`, id)
	return err
}

// Delete removes a conversation and all of its messages in one transaction,
// scoped to the owning user. Returns pgx.ErrNoRows when the conversation
// does not exist or belongs to someone else.
func (r *ConversationRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var owned uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM conversations WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&owned)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM chat_messages WHERE conversation_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM conversations WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// InsertMessage appends a message to a conversation. The seq column is
// assigned from the conversation's current maximum inside the insert, so
// readers always observe a total order even when created_at ties.
func (r *ConversationRepository) InsertMessage(ctx context.Context, msg *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (conversation_id, user_id, message, is_user, seq)
		VALUES (
			$1, $2, $3, $4,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM chat_messages WHERE conversation_id = $1)
		)
		RETURNING id, seq, created_at`

	return r.db.QueryRow(
		ctx, query,
		msg.ConversationID,
		msg.UserID,
		msg.Message,
		msg.IsUser,
	).Scan(&msg.ID, &msg.Seq, &msg.CreatedAt)
}

// ListMessages retrieves all messages in a conversation, oldest first
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]*models.ChatMessage, error) {
	query := `
		SELECT id, conversation_id, user_id, message, is_user, seq, created_at
		FROM chat_messages
		WHERE conversation_id = $1
		ORDER BY seq ASC`

	return r.queryMessages(ctx, query, conversationID)
}

// ListMessagesByUser retrieves every message a user has exchanged across
// all conversations, oldest first
func (r *ConversationRepository) ListMessagesByUser(ctx context.Context, userID uuid.UUID) ([]*models.ChatMessage, error) {
	query := `
		SELECT id, conversation_id, user_id, message, is_user, seq, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at ASC, seq ASC`

	return r.queryMessages(ctx, query, userID)
}

func (r *ConversationRepository) queryMessages(ctx context.Context, query string, arg interface{}) ([]*models.ChatMessage, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*models.ChatMessage
	for rows.Next() {
		msg := &models.ChatMessage{}
		err := rows.Scan(
			&msg.ID,
			&msg.ConversationID,
			&msg.UserID,
			&msg.Message,
			&msg.IsUser,
			&msg.Seq,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	return msgs, rows.Err()
}
