package service

import (
	"context"
	"errors"
	"strings"

	"healthbridge-backend/apperrors"
	"healthbridge-backend/inference"
	"healthbridge-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// ConversationStore is the persistence surface the assistant needs
type ConversationStore interface {
	Create(ctx context.Context, userID uuid.UUID) (*models.Conversation, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Conversation, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Conversation, error)
	Touch(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	InsertMessage(ctx context.Context, msg *models.ChatMessage) error
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]*models.ChatMessage, error)
	ListMessagesByUser(ctx context.Context, userID uuid.UUID) ([]*models.ChatMessage, error)
}

// MemoryStore is the persistence surface for curated user memories
type MemoryStore interface {
	Create(ctx context.Context, mem *models.Memory) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Memory, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// ChatClient sends a transcript to the chat inference endpoint
type ChatClient interface {
	Chat(ctx context.Context, messages []inference.Message) (string, error)
}

// AssistantService handles conversations with the health assistant
type AssistantService struct {
	conversations ConversationStore
	memories      MemoryStore
	chat          ChatClient
	logger        zerolog.Logger
}

// AssistantServiceOption is a functional option for AssistantService
type AssistantServiceOption func(*AssistantService)

// AssistantWithConversationStore sets the conversation store
func AssistantWithConversationStore(store ConversationStore) AssistantServiceOption {
	return func(s *AssistantService) {
		s.conversations = store
	}
}

// AssistantWithMemoryStore sets the memory store
func AssistantWithMemoryStore(store MemoryStore) AssistantServiceOption {
	return func(s *AssistantService) {
		s.memories = store
	}
}

// AssistantWithChatClient sets the chat inference client
func AssistantWithChatClient(chat ChatClient) AssistantServiceOption {
	return func(s *AssistantService) {
		s.chat = chat
	}
}

// AssistantWithLogger sets the logger
func AssistantWithLogger(logger zerolog.Logger) AssistantServiceOption {
	return func(s *AssistantService) {
		s.logger = logger
	}
}

// NewAssistantService creates a new assistant service
func NewAssistantService(opts ...AssistantServiceOption) *AssistantService {
	s := &AssistantService{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateConversation creates an empty conversation for the user
func (s *AssistantService) CreateConversation(ctx context.Context, userID uuid.UUID) (*models.Conversation, error) {
	conv, err := s.conversations.Create(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to create conversation", err)
	}
	return conv, nil
}

// ListConversations lists the user's conversations, most recently updated
// first
func (s *AssistantService) ListConversations(ctx context.Context, userID uuid.UUID) ([]*models.Conversation, error) {
	convs, err := s.conversations.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list conversations", err)
	}
	return convs, nil
}

// ListMessages lists a conversation's messages oldest first. The
// conversation must belong to the requesting user; foreign conversations
// are reported as not found.
func (s *AssistantService) ListMessages(ctx context.Context, conversationID, userID uuid.UUID) ([]*models.ChatMessage, error) {
	if _, err := s.ownedConversation(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	msgs, err := s.conversations.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, apperrors.Internal("failed to list messages", err)
	}
	return msgs, nil
}

// ChatHistory lists every message the user has exchanged across all
// conversations, oldest first
func (s *AssistantService) ChatHistory(ctx context.Context, userID uuid.UUID) ([]*models.ChatMessage, error) {
	msgs, err := s.conversations.ListMessagesByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load chat history", err)
	}
	return msgs, nil
}

// SendMessage appends the user's message, forwards the transcript to the
// inference endpoint and persists the reply. The user message is durable
// before the inference call happens: if the model fails, the user's words
// are already saved and the error surfaces to the caller.
func (s *AssistantService) SendMessage(ctx context.Context, userID, conversationID uuid.UUID, text string) (*models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Validation("message is required")
	}

	if _, err := s.ownedConversation(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	userMsg := &models.ChatMessage{
		ConversationID: conversationID,
		UserID:         userID,
		Message:        text,
		IsUser:         true,
	}
	if err := s.conversations.InsertMessage(ctx, userMsg); err != nil {
		return nil, apperrors.Internal("failed to save message", err)
	}

	// History is read after the insert so the prompt always includes the
	// triggering message.
	history, err := s.conversations.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, apperrors.Internal("failed to load history", err)
	}

	memories, err := s.memories.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load memories", err)
	}

	prompt := buildPrompt(memories, history, text)

	reply, err := s.chat.Chat(ctx, prompt)
	if err != nil {
		return nil, apperrors.Upstream("assistant is unavailable", err)
	}

	assistantMsg := &models.ChatMessage{
		ConversationID: conversationID,
		UserID:         userID,
		Message:        reply,
		IsUser:         false,
	}
	if err := s.conversations.InsertMessage(ctx, assistantMsg); err != nil {
		return nil, apperrors.Internal("failed to save reply", err)
	}

	if err := s.conversations.Touch(ctx, conversationID); err != nil {
		s.logger.Warn().Err(err).Str("conversation", conversationID.String()).Msg("failed to bump conversation timestamp")
	}

	return assistantMsg, nil
}

// DeleteConversation removes a conversation and its messages
func (s *AssistantService) DeleteConversation(ctx context.Context, conversationID, userID uuid.UUID) error {
	err := s.conversations.Delete(ctx, conversationID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("conversation not found")
		}
		return apperrors.Internal("failed to delete conversation", err)
	}
	return nil
}

// AddMemory stores one curated fact about the user. Memories feed every
// chat prompt, so they stay short; anything bigger than MaxMemoryLength is
// a payload that belongs elsewhere.
func (s *AssistantService) AddMemory(ctx context.Context, userID uuid.UUID, text string) (*models.Memory, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.Validation("memory text is required")
	}
	if len(text) > models.MaxMemoryLength {
		return nil, apperrors.Validation("memory text is too long")
	}

	mem := &models.Memory{UserID: userID, Memory: text}
	if err := s.memories.Create(ctx, mem); err != nil {
		return nil, apperrors.Internal("failed to save memory", err)
	}
	return mem, nil
}

// ListMemories lists the user's memories, oldest first
func (s *AssistantService) ListMemories(ctx context.Context, userID uuid.UUID) ([]*models.Memory, error) {
	memories, err := s.memories.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list memories", err)
	}
	return memories, nil
}

// DeleteMemory removes one memory scoped to its owner
func (s *AssistantService) DeleteMemory(ctx context.Context, id, userID uuid.UUID) error {
	err := s.memories.Delete(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("memory not found")
		}
		return apperrors.Internal("failed to delete memory", err)
	}
	return nil
}

func (s *AssistantService) ownedConversation(ctx context.Context, conversationID, userID uuid.UUID) (*models.Conversation, error) {
	conv, err := s.conversations.GetByID(ctx, conversationID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("conversation not found")
		}
		return nil, apperrors.Internal("failed to load conversation", err)
	}
	return conv, nil
}

// buildPrompt reconstructs the transcript for the inference endpoint: an
// optional system block concatenating the user's memories, the chronological
// history, then the just-sent message if it is not already the tail.
func buildPrompt(memories []*models.Memory, history []*models.ChatMessage, latest string) []inference.Message {
	var messages []inference.Message

	if len(memories) > 0 {
		var sb strings.Builder
		sb.WriteString("User information:\n")
		for _, mem := range memories {
			sb.WriteString(mem.Memory)
			sb.WriteString("\n")
		}
		sb.WriteString("\nPlease use the above information about the user when relevant to the conversation.")
		messages = append(messages, inference.Message{
			Role:    inference.RoleSystem,
			Content: sb.String(),
		})
	}

	for _, msg := range history {
		role := inference.RoleAssistant
		if msg.IsUser {
			role = inference.RoleUser
		}
		messages = append(messages, inference.Message{Role: role, Content: msg.Message})
	}

	tail := len(messages) - 1
	if tail < 0 || messages[tail].Role != inference.RoleUser || messages[tail].Content != latest {
		messages = append(messages, inference.Message{Role: inference.RoleUser, Content: latest})
	}

	return messages
}
