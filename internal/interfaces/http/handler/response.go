package handler

import (
	legalapp "github.com/lawai/backend/internal/application/legal"
	"github.com/lawai/backend/internal/interfaces/http/dto"
)

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// ClientListResponse wraps a page of clients
// @Description Page of clients
type ClientListResponse struct {
	Clients []legalapp.ClientResponse `json:"clients"`
}

// CaseListResponse wraps a page of cases
// @Description Page of cases
type CaseListResponse struct {
	Cases []legalapp.CaseResponse `json:"cases"`
}

// DeadlineListResponse wraps a page of deadlines
// @Description Page of deadlines
type DeadlineListResponse struct {
	Deadlines []legalapp.DeadlineResponse `json:"deadlines"`
}

// UpcomingDeadlineListResponse wraps classified deadlines
// @Description Deadlines with tier and remaining days
type UpcomingDeadlineListResponse struct {
	Deadlines []legalapp.UpcomingDeadline `json:"deadlines"`
}

// DocumentListResponse wraps a page of documents
// @Description Page of documents
type DocumentListResponse struct {
	Documents []legalapp.DocumentResponse `json:"documents"`
}
