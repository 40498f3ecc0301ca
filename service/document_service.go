package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"healthbridge-backend/apperrors"
	"healthbridge-backend/models"
	"healthbridge-backend/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// DocumentStore is the persistence surface the document pipeline needs
type DocumentStore interface {
	Create(ctx context.Context, doc *models.HealthcareDocument) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*models.HealthcareDocument, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.HealthcareDocument, error)
}

// OCRClient extracts text from a base64-encoded image
type OCRClient interface {
	OCR(ctx context.Context, base64Image string) (string, error)
}

// DefaultMaxUploadBytes bounds an upload when no limit is configured.
const DefaultMaxUploadBytes = 10 * 1024 * 1024 // 10MB

// DocumentService runs the upload → store → OCR → persist pipeline
type DocumentService struct {
	store    DocumentStore
	objects  storage.Storage
	ocr      OCRClient
	maxBytes int64
	logger   zerolog.Logger
}

// DocumentServiceOption is a functional option for DocumentService
type DocumentServiceOption func(*DocumentService)

// DocumentWithStore sets the document store
func DocumentWithStore(store DocumentStore) DocumentServiceOption {
	return func(s *DocumentService) {
		s.store = store
	}
}

// DocumentWithObjectStorage sets the object storage backend
func DocumentWithObjectStorage(objects storage.Storage) DocumentServiceOption {
	return func(s *DocumentService) {
		s.objects = objects
	}
}

// DocumentWithOCRClient sets the OCR inference client
func DocumentWithOCRClient(ocr OCRClient) DocumentServiceOption {
	return func(s *DocumentService) {
		s.ocr = ocr
	}
}

// DocumentWithMaxUploadBytes sets the upload size bound
func DocumentWithMaxUploadBytes(n int64) DocumentServiceOption {
	return func(s *DocumentService) {
		s.maxBytes = n
	}
}

// DocumentWithLogger sets the logger
func DocumentWithLogger(logger zerolog.Logger) DocumentServiceOption {
	return func(s *DocumentService) {
		s.logger = logger
	}
}

// NewDocumentService creates a new document service
func NewDocumentService(opts ...DocumentServiceOption) *DocumentService {
	s := &DocumentService{
		maxBytes: DefaultMaxUploadBytes,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UploadDocumentInput carries one raw file upload
type UploadDocumentInput struct {
	Title       string
	Type        models.DocumentType
	Description *string
	Filename    string
	Data        []byte
}

// OCRDocumentInput carries a pre-encoded upload (the client already turned
// the file into base64 for transport)
type OCRDocumentInput struct {
	Title       string
	Type        models.DocumentType
	Description *string
	Base64Data  string
}

// Upload runs the full pipeline for a raw file. The size bound is checked
// before any encoding or I/O; storage must succeed before OCR runs, and the
// database row is only written after both.
func (s *DocumentService) Upload(ctx context.Context, userID uuid.UUID, input UploadDocumentInput) (*models.HealthcareDocument, error) {
	if err := validateDocumentMeta(input.Title, input.Type); err != nil {
		return nil, err
	}
	if int64(len(input.Data)) > s.maxBytes {
		return nil, apperrors.Validation(fmt.Sprintf("file exceeds maximum size of %d bytes", s.maxBytes))
	}
	if len(input.Data) == 0 {
		return nil, apperrors.Validation("file is empty")
	}

	encoded := base64.StdEncoding.EncodeToString(input.Data)
	return s.run(ctx, userID, input.Title, input.Type, input.Description, input.Filename, input.Data, encoded)
}

// UploadBase64 runs the same pipeline entered with pre-encoded data
func (s *DocumentService) UploadBase64(ctx context.Context, userID uuid.UUID, input OCRDocumentInput) (*models.HealthcareDocument, error) {
	if err := validateDocumentMeta(input.Title, input.Type); err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(input.Base64Data)
	if err != nil {
		return nil, apperrors.Validation("base64Data is not valid base64")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, apperrors.Validation(fmt.Sprintf("file exceeds maximum size of %d bytes", s.maxBytes))
	}
	if len(data) == 0 {
		return nil, apperrors.Validation("file is empty")
	}

	filename := input.Title + ".png"
	return s.run(ctx, userID, input.Title, input.Type, input.Description, filename, data, input.Base64Data)
}

func (s *DocumentService) run(
	ctx context.Context,
	userID uuid.UUID,
	title string,
	docType models.DocumentType,
	description *string,
	filename string,
	data []byte,
	encoded string,
) (*models.HealthcareDocument, error) {
	fileID := uuid.New()

	storagePath, err := s.objects.Upload(ctx, fileID, filename, bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Upstream("failed to store document", err)
	}

	ocrText, err := s.ocr.OCR(ctx, encoded)
	if err != nil {
		// The stored object is orphaned without a row pointing at it.
		s.cleanup(ctx, storagePath)
		return nil, apperrors.Upstream("OCR failed", err)
	}

	doc := &models.HealthcareDocument{
		UserID:      userID,
		Type:        docType,
		Title:       title,
		Description: description,
		FileURL:     s.objects.PublicURL(storagePath),
		OCRText:     &ocrText,
	}

	if err := s.store.Create(ctx, doc); err != nil {
		s.cleanup(ctx, storagePath)
		return nil, apperrors.Internal("failed to save document record", err)
	}

	return doc, nil
}

func (s *DocumentService) cleanup(ctx context.Context, storagePath string) {
	if err := s.objects.Delete(ctx, storagePath); err != nil {
		s.logger.Warn().Err(err).Str("path", storagePath).Msg("failed to clean up stored object")
	}
}

// GetDocuments lists all documents for a user, oldest first
func (s *DocumentService) GetDocuments(ctx context.Context, userID uuid.UUID) ([]*models.HealthcareDocument, error) {
	docs, err := s.store.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list documents", err)
	}
	return docs, nil
}

// GetDocument fetches one document scoped to its owner
func (s *DocumentService) GetDocument(ctx context.Context, id, userID uuid.UUID) (*models.HealthcareDocument, error) {
	doc, err := s.store.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("document not found")
		}
		return nil, apperrors.Internal("failed to fetch document", err)
	}
	return doc, nil
}

func validateDocumentMeta(title string, docType models.DocumentType) error {
	if title == "" {
		return apperrors.Validation("title is required")
	}
	if !models.ValidDocumentType(docType) {
		return apperrors.Validation("invalid document type")
	}
	return nil
}
