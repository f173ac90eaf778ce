package legal

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/lawai/backend/internal/domain/shared"
)

// DocumentStatusDraft is the status of a newly created document
const DocumentStatusDraft = "draft"

// FileInfo describes the file uploaded with a document
type FileInfo struct {
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	StorageKey  string `json:"storage_key,omitempty"`
}

// String renders the info as the JSON text stored in documents.file_info
func (f *FileInfo) String() string {
	if f == nil {
		return ""
	}
	b, _ := json.Marshal(f)
	return string(b)
}

// ParseFileInfo parses the stored JSON text. Empty or malformed text yields nil.
func ParseFileInfo(s string) *FileInfo {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var fi FileInfo
	if err := json.Unmarshal([]byte(s), &fi); err != nil {
		return nil
	}
	return &fi
}

// IsText reports whether the uploaded file is a text/* payload
func (f *FileInfo) IsText() bool {
	return f != nil && strings.HasPrefix(strings.ToLower(f.ContentType), "text/")
}

// Document is a legal document (petition, contract, opinion...) with optional
// uploaded file and AI analysis
type Document struct {
	shared.Timestamps
	shared.OwnedEntity
	ID           string
	Title        string
	Content      string
	FileType     string
	FileInfo     *FileInfo
	Status       string
	ClientName   string
	DocumentType string
	Analysis     string
}

// NewDocument creates a draft document with a fresh opaque id
func NewDocument(ownerID, title, fileType string) (*Document, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, shared.NewValidationError("Owner is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewValidationError("Título do documento é obrigatório")
	}
	fileType = strings.TrimSpace(fileType)
	if fileType == "" {
		return nil, shared.NewValidationError("Tipo de arquivo é obrigatório")
	}
	return &Document{
		Timestamps:  shared.NewTimestamps(),
		OwnedEntity: shared.OwnedEntity{UserID: ownerID},
		ID:          uuid.New().String(),
		Title:       title,
		FileType:    fileType,
		Status:      DocumentStatusDraft,
	}, nil
}

// StorageKey returns the object key for an uploaded file of this document
func (d *Document) StorageKey(filename string) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(strings.TrimSpace(filename))
	if name == "" {
		name = "file"
	}
	return "documents/" + d.UserID + "/" + d.ID + "/" + name
}

// HasFile reports whether a file was stored for the document
func (d *Document) HasFile() bool {
	return d.FileInfo != nil && d.FileInfo.StorageKey != ""
}

// DocumentPatch lists the updatable document fields
type DocumentPatch struct {
	Title        *string
	Content      *string
	FileType     *string
	Status       *string
	ClientName   *string
	DocumentType *string
	Analysis     *string
}

// Apply applies the supplied fields only
func (d *Document) Apply(p DocumentPatch) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return shared.NewValidationError("Título do documento é obrigatório")
		}
		d.Title = title
	}
	if p.FileType != nil {
		ft := strings.TrimSpace(*p.FileType)
		if ft == "" {
			return shared.NewValidationError("Tipo de arquivo é obrigatório")
		}
		d.FileType = ft
	}
	if p.Content != nil {
		d.Content = *p.Content
	}
	if p.Status != nil {
		status := strings.TrimSpace(*p.Status)
		if status == "" {
			status = DocumentStatusDraft
		}
		d.Status = status
	}
	if p.ClientName != nil {
		d.ClientName = strings.TrimSpace(*p.ClientName)
	}
	if p.DocumentType != nil {
		d.DocumentType = strings.TrimSpace(*p.DocumentType)
	}
	if p.Analysis != nil {
		d.Analysis = *p.Analysis
	}
	d.Touch()
	return nil
}
