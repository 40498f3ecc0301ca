package service

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"testing"

	"healthbridge-backend/apperrors"
	"healthbridge-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocumentStore struct {
	docs      []*models.HealthcareDocument
	createErr error
}

func (f *fakeDocumentStore) Create(ctx context.Context, doc *models.HealthcareDocument) error {
	if f.createErr != nil {
		return f.createErr
	}
	doc.ID = uuid.New()
	f.docs = append(f.docs, doc)
	return nil
}

func (f *fakeDocumentStore) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.HealthcareDocument, error) {
	for _, d := range f.docs {
		if d.ID == id && d.UserID == userID {
			return d, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeDocumentStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.HealthcareDocument, error) {
	var out []*models.HealthcareDocument
	for _, d := range f.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeObjectStorage struct {
	uploads   int
	deletes   []string
	uploadErr error
}

func (f *fakeObjectStorage) Upload(ctx context.Context, fileID uuid.UUID, filename string, data io.Reader) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads++
	return "documents/" + fileID.String() + "/" + filename, nil
}

func (f *fakeObjectStorage) PublicURL(storagePath string) string {
	return "http://files.test/" + storagePath
}

func (f *fakeObjectStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeObjectStorage) Delete(ctx context.Context, storagePath string) error {
	f.deletes = append(f.deletes, storagePath)
	return nil
}

type fakeOCRClient struct {
	calls int
	text  string
	err   error
}

func (f *fakeOCRClient) OCR(ctx context.Context, base64Image string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func newDocumentServiceForTest(store *fakeDocumentStore, objects *fakeObjectStorage, ocr *fakeOCRClient) *DocumentService {
	return NewDocumentService(
		DocumentWithStore(store),
		DocumentWithObjectStorage(objects),
		DocumentWithOCRClient(ocr),
	)
}

func TestUploadPipeline(t *testing.T) {
	store := &fakeDocumentStore{}
	objects := &fakeObjectStorage{}
	ocr := &fakeOCRClient{text: "Rx: amoxicillin 500mg"}
	svc := newDocumentServiceForTest(store, objects, ocr)
	userID := uuid.New()

	doc, err := svc.Upload(context.Background(), userID, UploadDocumentInput{
		Title:    "Pharmacy receipt",
		Type:     models.DocumentTypePrescription,
		Filename: "receipt.png",
		Data:     []byte("fake image bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, userID, doc.UserID)
	assert.Contains(t, doc.FileURL, "http://files.test/documents/")
	require.NotNil(t, doc.OCRText)
	assert.Equal(t, "Rx: amoxicillin 500mg", *doc.OCRText)
	assert.Equal(t, 1, objects.uploads)
	assert.Equal(t, 1, ocr.calls)
	assert.Len(t, store.docs, 1)

	// The pipeline handed the OCR client the stored bytes, base64-encoded.
	got, err := svc.GetDocument(context.Background(), doc.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
}

func TestUploadOversizedFileTouchesNothing(t *testing.T) {
	store := &fakeDocumentStore{}
	objects := &fakeObjectStorage{}
	ocr := &fakeOCRClient{}
	svc := NewDocumentService(
		DocumentWithStore(store),
		DocumentWithObjectStorage(objects),
		DocumentWithOCRClient(ocr),
		DocumentWithMaxUploadBytes(8),
	)

	_, err := svc.Upload(context.Background(), uuid.New(), UploadDocumentInput{
		Title:    "Too big",
		Type:     models.DocumentTypeLabReport,
		Filename: "scan.png",
		Data:     []byte("way more than eight bytes"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, objects.uploads)
	assert.Zero(t, ocr.calls)
	assert.Empty(t, store.docs)
}

func TestUploadStorageFailureSkipsOCR(t *testing.T) {
	store := &fakeDocumentStore{}
	objects := &fakeObjectStorage{uploadErr: errors.New("bucket unavailable")}
	ocr := &fakeOCRClient{}
	svc := newDocumentServiceForTest(store, objects, ocr)

	_, err := svc.Upload(context.Background(), uuid.New(), UploadDocumentInput{
		Title:    "Scan",
		Type:     models.DocumentTypeImagingReport,
		Filename: "scan.png",
		Data:     []byte("bytes"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
	assert.Zero(t, ocr.calls)
	assert.Empty(t, store.docs)
}

func TestUploadOCRFailureCleansUpStoredObject(t *testing.T) {
	store := &fakeDocumentStore{}
	objects := &fakeObjectStorage{}
	ocr := &fakeOCRClient{err: errors.New("model unavailable")}
	svc := newDocumentServiceForTest(store, objects, ocr)

	_, err := svc.Upload(context.Background(), uuid.New(), UploadDocumentInput{
		Title:    "Scan",
		Type:     models.DocumentTypeImagingReport,
		Filename: "scan.png",
		Data:     []byte("bytes"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
	assert.Empty(t, store.docs)
	require.Len(t, objects.deletes, 1, "orphaned object should be deleted")
}

func TestUploadStoreFailureCleansUp(t *testing.T) {
	store := &fakeDocumentStore{createErr: errors.New("connection reset")}
	objects := &fakeObjectStorage{}
	ocr := &fakeOCRClient{text: "text"}
	svc := newDocumentServiceForTest(store, objects, ocr)

	_, err := svc.Upload(context.Background(), uuid.New(), UploadDocumentInput{
		Title:    "Scan",
		Type:     models.DocumentTypeOther,
		Filename: "scan.png",
		Data:     []byte("bytes"),
	})
	require.Error(t, err)
	require.Len(t, objects.deletes, 1)
}

func TestUploadBase64(t *testing.T) {
	store := &fakeDocumentStore{}
	objects := &fakeObjectStorage{}
	ocr := &fakeOCRClient{text: "extracted"}
	svc := newDocumentServiceForTest(store, objects, ocr)
	userID := uuid.New()

	encoded := base64.StdEncoding.EncodeToString([]byte("image bytes"))
	doc, err := svc.UploadBase64(context.Background(), userID, OCRDocumentInput{
		Title:      "Insurance card",
		Type:       models.DocumentTypeInsuranceCard,
		Base64Data: encoded,
	})
	require.NoError(t, err)
	assert.Equal(t, "extracted", *doc.OCRText)
}

func TestUploadBase64RejectsBadEncoding(t *testing.T) {
	svc := newDocumentServiceForTest(&fakeDocumentStore{}, &fakeObjectStorage{}, &fakeOCRClient{})

	_, err := svc.UploadBase64(context.Background(), uuid.New(), OCRDocumentInput{
		Title:      "Card",
		Type:       models.DocumentTypeInsuranceCard,
		Base64Data: "not-base64!!!",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestUploadRejectsInvalidType(t *testing.T) {
	svc := newDocumentServiceForTest(&fakeDocumentStore{}, &fakeObjectStorage{}, &fakeOCRClient{})

	_, err := svc.Upload(context.Background(), uuid.New(), UploadDocumentInput{
		Title:    "Scan",
		Type:     models.DocumentType("tax_return"),
		Filename: "scan.png",
		Data:     []byte("bytes"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetDocumentScopedToOwner(t *testing.T) {
	store := &fakeDocumentStore{}
	svc := newDocumentServiceForTest(store, &fakeObjectStorage{}, &fakeOCRClient{text: "t"})
	owner := uuid.New()

	doc, err := svc.Upload(context.Background(), owner, UploadDocumentInput{
		Title:    "Scan",
		Type:     models.DocumentTypeLabReport,
		Filename: "scan.png",
		Data:     []byte("bytes"),
	})
	require.NoError(t, err)

	_, err = svc.GetDocument(context.Background(), doc.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
