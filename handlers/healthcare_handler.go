package handlers

import (
	"io"
	"net/http"

	"healthbridge-backend/models"
	"healthbridge-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HealthcareHandler handles HTTP requests for documents, conditions and
// medications
type HealthcareHandler struct {
	documents  *service.DocumentService
	healthcare *service.HealthcareService
}

// NewHealthcareHandler creates a new healthcare handler
func NewHealthcareHandler(documents *service.DocumentService, healthcare *service.HealthcareService) *HealthcareHandler {
	return &HealthcareHandler{
		documents:  documents,
		healthcare: healthcare,
	}
}

// UploadDocument handles POST /api/documents (multipart)
func (h *HealthcareHandler) UploadDocument(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondErrorCode(c, http.StatusBadRequest, "MISSING_FILE", "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}

	var description *string
	if d := c.PostForm("description"); d != "" {
		description = &d
	}

	doc, err := h.documents.Upload(c.Request.Context(), principal.ID, service.UploadDocumentInput{
		Title:       c.PostForm("title"),
		Type:        models.DocumentType(c.PostForm("type")),
		Description: description,
		Filename:    fileHeader.Filename,
		Data:        data,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, doc)
}

type ocrDocumentRequest struct {
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Description *string `json:"description"`
	Base64Data  string  `json:"base64Data"`
}

// OCRDocument handles POST /api/documents/ocr (pre-encoded upload)
func (h *HealthcareHandler) OCRDocument(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	var req ocrDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_PAYLOAD", "request body is not valid JSON")
		return
	}

	doc, err := h.documents.UploadBase64(c.Request.Context(), principal.ID, service.OCRDocumentInput{
		Title:       req.Title,
		Type:        models.DocumentType(req.Type),
		Description: req.Description,
		Base64Data:  req.Base64Data,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, doc)
}

// ListDocuments handles GET /api/documents
func (h *HealthcareHandler) ListDocuments(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	docs, err := h.documents.GetDocuments(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, docs)
}

// GetDocument handles GET /api/documents/:id
func (h *HealthcareHandler) GetDocument(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID format")
		return
	}

	doc, err := h.documents.GetDocument(c.Request.Context(), id, principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, doc)
}

// AddCondition handles POST /api/conditions
func (h *HealthcareHandler) AddCondition(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	var input service.ConditionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_PAYLOAD", "name is required")
		return
	}

	condition, err := h.healthcare.AddCondition(c.Request.Context(), principal.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, condition)
}

// ListConditions handles GET /api/conditions
func (h *HealthcareHandler) ListConditions(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	conditions, err := h.healthcare.GetConditions(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, conditions)
}

// AddMedication handles POST /api/medications
func (h *HealthcareHandler) AddMedication(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	var input service.MedicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_PAYLOAD", "name, dosage, frequency and startDate are required")
		return
	}

	med, err := h.healthcare.AddMedication(c.Request.Context(), principal.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, med)
}

// ListMedications handles GET /api/medications
func (h *HealthcareHandler) ListMedications(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	meds, err := h.healthcare.GetMedications(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, meds)
}

// UpdateMedication handles PUT /api/medications/:id
func (h *HealthcareHandler) UpdateMedication(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		respondErrorCode(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_ID", "invalid medication ID format")
		return
	}

	var input service.MedicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_PAYLOAD", "name, dosage, frequency and startDate are required")
		return
	}

	med, err := h.healthcare.UpdateMedication(c.Request.Context(), id, principal.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, med)
}
