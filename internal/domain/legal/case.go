package legal

import (
	"fmt"
	"strings"

	"github.com/lawai/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Case statuses tracked by the statistics view. Other values are accepted
// and stored as given.
const (
	CaseStatusActive    = "ativo"
	CaseStatusArchived  = "arquivado"
	CaseStatusConcluded = "concluído"
	CaseStatusSuspended = "suspenso"
)

// KnownCaseStatuses is the fixed order used by case statistics
var KnownCaseStatuses = []string{
	CaseStatusActive,
	CaseStatusArchived,
	CaseStatusConcluded,
	CaseStatusSuspended,
}

const noCaseNumber = "Sem número"

// Case is a legal matter (processo) handled for one client
type Case struct {
	shared.Timestamps
	shared.OwnedEntity
	ID          int64
	Title       string
	Number      string
	Type        string
	Court       string
	Status      string
	Value       *decimal.Decimal
	Description string
	ClientID    int64
}

// NewCase creates a case for clientID. The caller is responsible for
// checking that the client belongs to ownerID.
func NewCase(ownerID, title string, clientID int64) (*Case, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, shared.NewValidationError("Owner is required")
	}
	if clientID <= 0 {
		return nil, shared.NewValidationError("Cliente é obrigatório")
	}
	c := &Case{
		Timestamps:  shared.NewTimestamps(),
		OwnedEntity: shared.OwnedEntity{UserID: ownerID},
		Status:      CaseStatusActive,
		ClientID:    clientID,
	}
	if err := c.SetTitle(title); err != nil {
		return nil, err
	}
	return c, nil
}

// SetTitle sets the case title, which cannot be blank
func (c *Case) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewValidationError("Título do processo é obrigatório")
	}
	c.Title = title
	c.Touch()
	return nil
}

// SetStatus sets the status; blank resets to the default
func (c *Case) SetStatus(status string) {
	status = strings.TrimSpace(status)
	if status == "" {
		status = CaseStatusActive
	}
	c.Status = status
	c.Touch()
}

// SetValue sets the monetary value of the claim
func (c *Case) SetValue(v *decimal.Decimal) error {
	if v != nil && v.IsNegative() {
		return shared.NewValidationError("Valor da causa não pode ser negativo")
	}
	c.Value = v
	c.Touch()
	return nil
}

// Label renders the dropdown label "{title} ({number})"
func (c *Case) Label() string {
	number := c.Number
	if number == "" {
		number = noCaseNumber
	}
	return fmt.Sprintf("%s (%s)", c.Title, number)
}

// Summary returns the compact reference attached to deadlines
func (c *Case) Summary() CaseSummary {
	return CaseSummary{ID: c.ID, Title: c.Title, Number: c.Number}
}

// CaseSummary is the {id,title,number} view of a case
type CaseSummary struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Number string `json:"number"`
}

// CasePatch lists the updatable case fields. ClientID reassignment must be
// authorized by the application layer before Apply is called.
type CasePatch struct {
	Title       *string
	Number      *string
	Type        *string
	Court       *string
	Status      *string
	Value       *decimal.Decimal
	Description *string
	ClientID    *int64
}

// Apply applies the supplied fields only
func (c *Case) Apply(p CasePatch) error {
	if p.Title != nil {
		if err := c.SetTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Value != nil {
		if err := c.SetValue(p.Value); err != nil {
			return err
		}
	}
	if p.Number != nil {
		c.Number = strings.TrimSpace(*p.Number)
	}
	if p.Type != nil {
		c.Type = strings.TrimSpace(*p.Type)
	}
	if p.Court != nil {
		c.Court = strings.TrimSpace(*p.Court)
	}
	if p.Status != nil {
		c.SetStatus(*p.Status)
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.ClientID != nil && *p.ClientID > 0 {
		c.ClientID = *p.ClientID
	}
	c.Touch()
	return nil
}

// ChangesClient reports whether the patch moves the case to another client
func (p CasePatch) ChangesClient(current int64) bool {
	return p.ClientID != nil && *p.ClientID > 0 && *p.ClientID != current
}
