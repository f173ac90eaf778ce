package legal

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lawai/backend/internal/domain/legal"
	"github.com/lawai/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// FileStorage is the object store holding uploaded document files
type FileStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
}

// DocumentRenderer turns a document into a PDF file
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, doc *legal.Document) ([]byte, error)
}

// DocumentService handles legal documents and their files
type DocumentService struct {
	documentRepo legal.DocumentRepository
	storage      FileStorage
	renderer     DocumentRenderer
	logger       *zap.Logger
	now          Clock
}

// NewDocumentService creates a new DocumentService. renderer may be nil, in
// which case PDF export reports an invalid state.
func NewDocumentService(
	documentRepo legal.DocumentRepository,
	storage FileStorage,
	renderer DocumentRenderer,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		documentRepo: documentRepo,
		storage:      storage,
		renderer:     renderer,
		logger:       logger,
		now:          systemClock,
	}
}

// SetClock overrides the time source used for created_ago
func (s *DocumentService) SetClock(clock Clock) {
	s.now = clock
}

// Create stores a document and, when given, its file. Text files fill an
// empty content field.
func (s *DocumentService) Create(ctx context.Context, ownerID string, req CreateDocumentRequest, file *UploadedFile) (*DocumentResponse, error) {
	doc, err := legal.NewDocument(ownerID, req.Title, req.FileType)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if err := doc.Apply(legal.DocumentPatch{
		Content:      &req.Content,
		Status:       &status,
		ClientName:   &req.ClientName,
		DocumentType: &req.DocumentType,
		Analysis:     &req.Analysis,
	}); err != nil {
		return nil, err
	}

	if file != nil && len(file.Data) > 0 {
		contentType := uploadContentType(file)
		info := &legal.FileInfo{
			Filename:    file.Filename,
			Size:        int64(len(file.Data)),
			ContentType: contentType,
			StorageKey:  doc.StorageKey(file.Filename),
		}
		if err := s.storage.Upload(ctx, info.StorageKey, file.Data, contentType); err != nil {
			return nil, fmt.Errorf("upload document file: %w", err)
		}
		doc.FileInfo = info
		if doc.Content == "" && info.IsText() && utf8.Valid(file.Data) {
			doc.Content = string(file.Data)
		}
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		if doc.HasFile() {
			s.removeFile(ctx, doc)
		}
		return nil, err
	}

	response := ToDocumentResponse(doc, s.now())
	return &response, nil
}

// List returns the caller's documents, newest first
func (s *DocumentService) List(ctx context.Context, ownerID string, limit int) ([]DocumentResponse, error) {
	filter := shared.Filter{Limit: limit}.Normalize()
	docs, err := s.documentRepo.FindAllByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		out[i] = ToDocumentResponse(d, now)
	}
	return out, nil
}

// GetByID returns one of the caller's documents
func (s *DocumentService) GetByID(ctx context.Context, ownerID, id string) (*DocumentResponse, error) {
	doc, err := loadOwned(ctx, s.documentRepo.FindByID, id, ownerID, msgDocumentNotFound)
	if err != nil {
		return nil, err
	}
	response := ToDocumentResponse(doc, s.now())
	return &response, nil
}

// Update applies a partial update to one of the caller's documents
func (s *DocumentService) Update(ctx context.Context, ownerID, id string, req UpdateDocumentRequest) (*DocumentResponse, error) {
	doc, err := loadOwned(ctx, s.documentRepo.FindByID, id, ownerID, msgDocumentNotFound)
	if err != nil {
		return nil, err
	}
	if err := doc.Apply(req.patch()); err != nil {
		return nil, err
	}
	if err := s.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	response := ToDocumentResponse(doc, s.now())
	return &response, nil
}

// Delete removes one of the caller's documents together with its file
func (s *DocumentService) Delete(ctx context.Context, ownerID, id string) error {
	doc, err := loadOwned(ctx, s.documentRepo.FindByID, id, ownerID, msgDocumentNotFound)
	if err != nil {
		return err
	}
	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}
	if doc.HasFile() {
		s.removeFile(ctx, doc)
	}
	return nil
}

// DownloadURL returns a presigned link to the document's stored file
func (s *DocumentService) DownloadURL(ctx context.Context, ownerID, id string) (*DownloadURLResponse, error) {
	doc, err := loadOwned(ctx, s.documentRepo.FindByID, id, ownerID, msgDocumentNotFound)
	if err != nil {
		return nil, err
	}
	if !doc.HasFile() {
		return nil, shared.NewNotFoundError("Documento não possui arquivo")
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, doc.FileInfo.StorageKey, 0)
	if err != nil {
		return nil, fmt.Errorf("generate download url: %w", err)
	}
	return &DownloadURLResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// RenderPDF renders one of the caller's documents as PDF. It returns the
// document title alongside the bytes for the download filename.
func (s *DocumentService) RenderPDF(ctx context.Context, ownerID, id string) ([]byte, string, error) {
	doc, err := loadOwned(ctx, s.documentRepo.FindByID, id, ownerID, msgDocumentNotFound)
	if err != nil {
		return nil, "", err
	}
	if s.renderer == nil {
		return nil, "", shared.NewDomainError(shared.CodeInvalidState, "Exportação em PDF indisponível")
	}
	pdf, err := s.renderer.RenderDocument(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("render document pdf: %w", err)
	}
	return pdf, doc.Title, nil
}

func (s *DocumentService) removeFile(ctx context.Context, doc *legal.Document) {
	if err := s.storage.DeleteObject(ctx, doc.FileInfo.StorageKey); err != nil {
		s.logger.Warn("Failed to delete document file",
			zap.String("document_id", doc.ID),
			zap.String("storage_key", doc.FileInfo.StorageKey),
			zap.Error(err))
	}
}

// uploadContentType trusts the declared type unless it is missing or the
// generic octet-stream label, in which case the bytes are sniffed
func uploadContentType(file *UploadedFile) string {
	declared := strings.TrimSpace(file.ContentType)
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != "application/octet-stream" {
		return declared
	}
	return http.DetectContentType(file.Data)
}
