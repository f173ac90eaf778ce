package printing

import (
	"context"
	"time"
)

// A4 paper dimensions in millimeters
const (
	a4WidthMM  = 210.0
	a4HeightMM = 297.0
)

// Margins in millimeters
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins returns the margins used for legal documents (ABNT-like:
// 30mm top/left, 20mm bottom/right)
func DefaultMargins() Margins {
	return Margins{Top: 30, Right: 20, Bottom: 20, Left: 30}
}

// RenderRequest contains the parameters for rendering HTML to PDF
type RenderRequest struct {
	// HTML content to render; fragments are wrapped in a full document
	HTML string
	// Title for the PDF document metadata
	Title string
	// Landscape switches the A4 page orientation
	Landscape bool
	Margins   Margins
	// FooterHTML is printed on every page (optional)
	FooterHTML string
	// Timeout overrides the renderer's default
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// PDFRenderer renders HTML to PDF
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
