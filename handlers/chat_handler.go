package handlers

import (
	"net/http"

	"healthbridge-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatHandler handles HTTP requests for conversations, messages and the
// assistant's memory
type ChatHandler struct {
	assistant *service.AssistantService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(assistant *service.AssistantService) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

// CreateConversation handles POST /api/conversations
func (h *ChatHandler) CreateConversation(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	conv, err := h.assistant.CreateConversation(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, conv)
}

// ListConversations handles GET /api/conversations
func (h *ChatHandler) ListConversations(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	convs, err := h.assistant.ListConversations(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, convs)
}

// DeleteConversation handles DELETE /api/conversations/:id
func (h *ChatHandler) DeleteConversation(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_ID", "invalid conversation ID format")
		return
	}

	if err := h.assistant.DeleteConversation(c.Request.Context(), id, principal.ID); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": id})
}

// ListMessages handles GET /api/conversations/:id/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_ID", "invalid conversation ID format")
		return
	}

	msgs, err := h.assistant.ListMessages(c.Request.Context(), id, principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, msgs)
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

// SendMessage handles POST /api/conversations/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_ID", "invalid conversation ID format")
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_PAYLOAD", "message is required")
		return
	}

	reply, err := h.assistant.SendMessage(c.Request.Context(), principal.ID, id, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, reply)
}

// ChatHistory handles GET /api/chat/history
func (h *ChatHandler) ChatHistory(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	history, err := h.assistant.ChatHistory(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, history)
}

type addMemoryRequest struct {
	Memory string `json:"memory"`
}

// AddMemory handles POST /api/memories
func (h *ChatHandler) AddMemory(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	var req addMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_PAYLOAD", "memory is required")
		return
	}

	mem, err := h.assistant.AddMemory(c.Request.Context(), principal.ID, req.Memory)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, mem)
}

// ListMemories handles GET /api/memories
func (h *ChatHandler) ListMemories(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	memories, err := h.assistant.ListMemories(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, memories)
}

// DeleteMemory handles DELETE /api/memories/:id
func (h *ChatHandler) DeleteMemory(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_ID", "invalid memory ID format")
		return
	}

	if err := h.assistant.DeleteMemory(c.Request.Context(), id, principal.ID); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": id})
}
