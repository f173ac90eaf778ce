package legal

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/lawai/backend/internal/domain/legal"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Client DTOs
// =============================================================================

// CreateClientRequest represents a request to create a client
type CreateClientRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"omitempty,max=255"`
	Phone    string `json:"phone" binding:"max=50"`
	Document string `json:"document" binding:"max=50"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
}

// UpdateClientRequest represents a partial client update
type UpdateClientRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Document *string `json:"document" binding:"omitempty,max=50"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
}

func (r UpdateClientRequest) patch() legal.ClientPatch {
	return legal.ClientPatch{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Document: r.Document,
		Address:  r.Address,
		Notes:    r.Notes,
	}
}

// ClientListQuery holds the client list query parameters
type ClientListQuery struct {
	Skip   int    `form:"skip" binding:"min=0"`
	Limit  int    `form:"limit" binding:"min=0,max=100"`
	Search string `form:"search"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Document  string    `json:"document"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToClientResponse converts a domain client to its response form
func ToClientResponse(c *legal.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Document:  c.Document,
		Address:   c.Address,
		Notes:     c.Notes,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToClientResponses converts a slice of clients
func ToClientResponses(clients []*legal.Client) []ClientResponse {
	out := make([]ClientResponse, len(clients))
	for i, c := range clients {
		out[i] = ToClientResponse(c)
	}
	return out
}

// =============================================================================
// Case DTOs
// =============================================================================

// CreateCaseRequest represents a request to open a case
type CreateCaseRequest struct {
	Title       string           `json:"title" binding:"required,min=1,max=255"`
	Number      string           `json:"number" binding:"max=100"`
	Type        string           `json:"type" binding:"max=100"`
	Court       string           `json:"court" binding:"max=255"`
	Status      string           `json:"status" binding:"max=50"`
	Value       *decimal.Decimal `json:"value"`
	Description string           `json:"description"`
	ClientID    int64            `json:"client_id" binding:"required,gt=0"`
}

// UpdateCaseRequest represents a partial case update
type UpdateCaseRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=255"`
	Number      *string          `json:"number" binding:"omitempty,max=100"`
	Type        *string          `json:"type" binding:"omitempty,max=100"`
	Court       *string          `json:"court" binding:"omitempty,max=255"`
	Status      *string          `json:"status" binding:"omitempty,max=50"`
	Value       *decimal.Decimal `json:"value"`
	Description *string          `json:"description"`
	ClientID    *int64           `json:"client_id" binding:"omitempty,gt=0"`
}

func (r UpdateCaseRequest) patch() legal.CasePatch {
	return legal.CasePatch{
		Title:       r.Title,
		Number:      r.Number,
		Type:        r.Type,
		Court:       r.Court,
		Status:      r.Status,
		Value:       r.Value,
		Description: r.Description,
		ClientID:    r.ClientID,
	}
}

// CaseListQuery holds the case list query parameters
type CaseListQuery struct {
	Skip     int   `form:"skip" binding:"min=0"`
	Limit    int   `form:"limit" binding:"min=0,max=100"`
	ClientID int64 `form:"client_id" binding:"min=0"`
}

// CaseResponse represents a case in API responses
type CaseResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Number      string           `json:"number"`
	Type        string           `json:"type"`
	Court       string           `json:"court"`
	Status      string           `json:"status"`
	Value       *decimal.Decimal `json:"value"`
	Description string           `json:"description"`
	ClientID    int64            `json:"client_id"`
	UserID      string           `json:"user_id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ToCaseResponse converts a domain case to its response form
func ToCaseResponse(c *legal.Case) CaseResponse {
	return CaseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Number:      c.Number,
		Type:        c.Type,
		Court:       c.Court,
		Status:      c.Status,
		Value:       c.Value,
		Description: c.Description,
		ClientID:    c.ClientID,
		UserID:      c.UserID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCaseResponses converts a slice of cases
func ToCaseResponses(cases []*legal.Case) []CaseResponse {
	out := make([]CaseResponse, len(cases))
	for i, c := range cases {
		out[i] = ToCaseResponse(c)
	}
	return out
}

// CaseOption is one entry of the case dropdown
type CaseOption struct {
	ID         int64  `json:"id"`
	Label      string `json:"label"`
	Value      string `json:"value"`
	ClientName string `json:"clientName"`
	Status     string `json:"status"`
}

// CaseStats counts a user's cases by status
type CaseStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

// =============================================================================
// Deadline DTOs
// =============================================================================

// CreateDeadlineRequest represents a request to create a deadline
type CreateDeadlineRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=255"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	Priority    string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	CaseID      *int64    `json:"case_id" binding:"omitempty,gt=0"`
}

// UpdateDeadlineRequest represents a partial deadline update
type UpdateDeadlineRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	IsCompleted *bool      `json:"is_completed"`
	CaseID      *int64     `json:"case_id" binding:"omitempty,gt=0"`
	// UnlinkCase is set by an explicit "case_id": null
	UnlinkCase bool `json:"-"`
}

// UnmarshalJSON tells an explicit null case_id apart from an omitted one
func (r *UpdateDeadlineRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateDeadlineRequest
	var body struct {
		plain
		CaseID json.RawMessage `json:"case_id"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	*r = UpdateDeadlineRequest(body.plain)

	raw := bytes.TrimSpace(body.CaseID)
	switch {
	case len(raw) == 0:
	case bytes.Equal(raw, []byte("null")):
		r.UnlinkCase = true
	default:
		var id int64
		if err := json.Unmarshal(raw, &id); err != nil {
			return err
		}
		r.CaseID = &id
	}
	return nil
}

func (r UpdateDeadlineRequest) patch() legal.DeadlinePatch {
	return legal.DeadlinePatch{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Priority:    r.Priority,
		IsCompleted: r.IsCompleted,
		CaseID:      r.CaseID,
		UnlinkCase:  r.UnlinkCase,
	}
}

// DeadlineListQuery holds the deadline list query parameters
type DeadlineListQuery struct {
	Skip        int   `form:"skip" binding:"min=0"`
	Limit       int   `form:"limit" binding:"min=0,max=100"`
	CaseID      int64 `form:"case_id" binding:"min=0"`
	PendingOnly bool  `form:"pending_only"`
	DaysAhead   int   `form:"days_ahead" binding:"min=0"`
}

// UpcomingQuery holds the upcoming-deadlines query parameters
type UpcomingQuery struct {
	DaysAhead        int  `form:"days_ahead"`
	IncludeCompleted bool `form:"include_completed"`
}

// DeadlineResponse represents a deadline in API responses
type DeadlineResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Priority    string    `json:"priority"`
	IsCompleted bool      `json:"is_completed"`
	CaseID      *int64    `json:"case_id"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToDeadlineResponse converts a domain deadline to its response form
func ToDeadlineResponse(d *legal.Deadline) DeadlineResponse {
	return DeadlineResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Priority:    string(d.Priority),
		IsCompleted: d.IsCompleted,
		CaseID:      d.CaseID,
		UserID:      d.UserID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDeadlineResponses converts a slice of deadlines
func ToDeadlineResponses(deadlines []*legal.Deadline) []DeadlineResponse {
	out := make([]DeadlineResponse, len(deadlines))
	for i, d := range deadlines {
		out[i] = ToDeadlineResponse(d)
	}
	return out
}

// UpcomingDeadline is a deadline enriched with its classification and case
type UpcomingDeadline struct {
	ID            int64              `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	DueDate       time.Time          `json:"due_date"`
	Priority      string             `json:"priority"`
	IsCompleted   bool               `json:"is_completed"`
	Case          *legal.CaseSummary `json:"case"`
	RemainingDays int                `json:"remaining_days"`
	Tier          legal.Tier         `json:"tier"`
	Status        string             `json:"status"`
}

// DeadlineStatisticsResponse is the wire form of deadline statistics
type DeadlineStatisticsResponse struct {
	Total          int64   `json:"total"`
	Pending        int64   `json:"pending"`
	Completed      int64   `json:"completed"`
	Overdue        int64   `json:"overdue"`
	Upcoming       int64   `json:"upcoming"`
	CompletionRate float64 `json:"completion_rate"`
}

// =============================================================================
// Document DTOs
// =============================================================================

// CreateDocumentRequest carries the multipart fields of a document upload
type CreateDocumentRequest struct {
	Title        string `form:"title" json:"title" binding:"required,min=1,max=255"`
	Content      string `form:"content" json:"content"`
	FileType     string `form:"file_type" json:"file_type" binding:"required,max=50"`
	Status       string `form:"status" json:"status" binding:"max=50"`
	ClientName   string `form:"client_name" json:"client_name" binding:"max=255"`
	DocumentType string `form:"document_type" json:"document_type" binding:"max=100"`
	Analysis     string `form:"analysis" json:"analysis"`
}

// UploadedFile is a file received with a document
type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UpdateDocumentRequest represents a partial document update
type UpdateDocumentRequest struct {
	Title        *string `json:"title" binding:"omitempty,min=1,max=255"`
	Content      *string `json:"content"`
	FileType     *string `json:"file_type" binding:"omitempty,max=50"`
	Status       *string `json:"status" binding:"omitempty,max=50"`
	ClientName   *string `json:"client_name" binding:"omitempty,max=255"`
	DocumentType *string `json:"document_type" binding:"omitempty,max=100"`
	Analysis     *string `json:"analysis"`
}

func (r UpdateDocumentRequest) patch() legal.DocumentPatch {
	return legal.DocumentPatch{
		Title:        r.Title,
		Content:      r.Content,
		FileType:     r.FileType,
		Status:       r.Status,
		ClientName:   r.ClientName,
		DocumentType: r.DocumentType,
		Analysis:     r.Analysis,
	}
}

// DocumentResponse represents a document in API responses
type DocumentResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	FileType     string    `json:"file_type"`
	FileInfo     *string   `json:"file_info"`
	Status       string    `json:"status"`
	ClientName   string    `json:"client_name"`
	DocumentType string    `json:"document_type"`
	Analysis     string    `json:"analysis"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedAgo   string    `json:"created_ago"`
}

// ToDocumentResponse converts a domain document; now drives created_ago
func ToDocumentResponse(d *legal.Document, now time.Time) DocumentResponse {
	resp := DocumentResponse{
		ID:           d.ID,
		Title:        d.Title,
		Content:      d.Content,
		FileType:     d.FileType,
		Status:       d.Status,
		ClientName:   d.ClientName,
		DocumentType: d.DocumentType,
		Analysis:     d.Analysis,
		UserID:       d.UserID,
		CreatedAt:    d.CreatedAt,
		CreatedAgo:   legal.FormatRelativeTime(d.CreatedAt, now),
	}
	if d.FileInfo != nil {
		info := d.FileInfo.String()
		resp.FileInfo = &info
	}
	return resp
}

// DownloadURLResponse is a presigned link to a document's file
type DownloadURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
