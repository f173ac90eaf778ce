package legal

import (
	"strings"
	"time"

	"github.com/lawai/backend/internal/domain/shared"
)

// Priority of a deadline
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates a priority; an empty value yields medium
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", shared.NewValidationError("Prioridade inválida: use low, medium ou high")
	}
}

// Deadline is a procedural deadline (prazo), optionally tied to a case
type Deadline struct {
	shared.Timestamps
	shared.OwnedEntity
	ID          int64
	Title       string
	Description string
	DueDate     time.Time
	Priority    Priority
	IsCompleted bool
	CaseID      *int64
}

// NewDeadline creates a pending deadline. dueAt must be strictly after now.
func NewDeadline(ownerID, title string, dueAt, now time.Time) (*Deadline, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, shared.NewValidationError("Owner is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewValidationError("Título do prazo é obrigatório")
	}
	if !dueAt.After(now) {
		return nil, shared.NewValidationError("A data limite deve ser no futuro")
	}
	return &Deadline{
		Timestamps:  shared.NewTimestamps(),
		OwnedEntity: shared.OwnedEntity{UserID: ownerID},
		Title:       title,
		DueDate:     dueAt.UTC(),
		Priority:    PriorityMedium,
	}, nil
}

// Complete marks the deadline as done. Completing twice is a no-op.
func (d *Deadline) Complete() {
	if d.IsCompleted {
		return
	}
	d.IsCompleted = true
	d.Touch()
}

// Classify runs the deadline classifier against now
func (d *Deadline) Classify(now time.Time) Classification {
	return Classify(d.DueDate, now)
}

// IsOverdue reports whether a pending deadline is already past due
func (d *Deadline) IsOverdue(now time.Time) bool {
	return !d.IsCompleted && d.DueDate.Before(now)
}

// DeadlinePatch lists the updatable deadline fields. A case reassignment
// must be authorized by the application layer before Apply is called.
type DeadlinePatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *string
	IsCompleted *bool
	CaseID      *int64
	// UnlinkCase detaches the deadline from its case; CaseID is ignored
	UnlinkCase bool
}

// Apply applies the supplied fields only
func (d *Deadline) Apply(p DeadlinePatch) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return shared.NewValidationError("Título do prazo é obrigatório")
		}
		d.Title = title
	}
	if p.Priority != nil {
		prio, err := ParsePriority(*p.Priority)
		if err != nil {
			return err
		}
		d.Priority = prio
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.DueDate != nil {
		d.DueDate = p.DueDate.UTC()
	}
	if p.IsCompleted != nil {
		d.IsCompleted = *p.IsCompleted
	}
	switch {
	case p.UnlinkCase:
		d.CaseID = nil
	case p.CaseID != nil:
		if *p.CaseID <= 0 {
			return shared.NewValidationError("Processo inválido")
		}
		id := *p.CaseID
		d.CaseID = &id
	}
	d.Touch()
	return nil
}

// ChangesCase reports whether the patch links the deadline to another case
func (p DeadlinePatch) ChangesCase(current *int64) bool {
	if p.UnlinkCase || p.CaseID == nil || *p.CaseID <= 0 {
		return false
	}
	return current == nil || *current != *p.CaseID
}

// DeadlineStatistics aggregates a user's deadlines
type DeadlineStatistics struct {
	Total          int64
	Pending        int64
	Completed      int64
	Overdue        int64
	Upcoming       int64
	CompletionRate float64
}
