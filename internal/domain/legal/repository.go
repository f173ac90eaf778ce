package legal

import (
	"context"
	"time"

	"github.com/lawai/backend/internal/domain/shared"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// Create inserts a client and assigns its ID
	Create(ctx context.Context, client *Client) error

	// Update saves all fields of an existing client
	Update(ctx context.Context, client *Client) error

	// Delete removes a client by ID
	Delete(ctx context.Context, id int64) error

	// FindByID finds a client by ID regardless of owner
	FindByID(ctx context.Context, id int64) (*Client, error)

	// FindByIDs finds the clients with the given IDs
	FindByIDs(ctx context.Context, ids []int64) ([]*Client, error)

	// FindAllByOwner lists a user's clients; Search matches name, email and document
	FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]*Client, error)
}

// CaseRepository defines the interface for case persistence
type CaseRepository interface {
	// Create inserts a case and assigns its ID
	Create(ctx context.Context, c *Case) error

	// Update saves all fields of an existing case
	Update(ctx context.Context, c *Case) error

	// Delete removes a case by ID
	Delete(ctx context.Context, id int64) error

	// FindByID finds a case by ID regardless of owner
	FindByID(ctx context.Context, id int64) (*Case, error)

	// FindByIDs finds the cases with the given IDs
	FindByIDs(ctx context.Context, ids []int64) ([]*Case, error)

	// FindAllByOwner lists a user's cases. Supported filter keys: "client_id".
	FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]*Case, error)

	// CountByOwner counts a user's cases
	CountByOwner(ctx context.Context, ownerID string) (int64, error)

	// CountByStatus groups a user's cases by status
	CountByStatus(ctx context.Context, ownerID string) (map[string]int64, error)
}

// DeadlineFilter selects deadlines of one owner
type DeadlineFilter struct {
	CaseID    *int64
	Completed *bool
	DueFrom   *time.Time // due_date >= DueFrom
	DueTo     *time.Time // due_date <= DueTo
	DueBefore *time.Time // due_date <  DueBefore
	Offset    int
	Limit     int // 0 means no limit
}

// DeadlineRepository defines the interface for deadline persistence
type DeadlineRepository interface {
	// Create inserts a deadline and assigns its ID
	Create(ctx context.Context, d *Deadline) error

	// Update saves all fields of an existing deadline
	Update(ctx context.Context, d *Deadline) error

	// Delete removes a deadline by ID
	Delete(ctx context.Context, id int64) error

	// FindByID finds a deadline by ID regardless of owner
	FindByID(ctx context.Context, id int64) (*Deadline, error)

	// FindAllByOwner lists a user's deadlines ordered by due date ascending
	FindAllByOwner(ctx context.Context, ownerID string, filter DeadlineFilter) ([]*Deadline, error)

	// CountByOwner counts a user's deadlines matching the filter (paging ignored)
	CountByOwner(ctx context.Context, ownerID string, filter DeadlineFilter) (int64, error)
}

// DocumentRepository defines the interface for document persistence
type DocumentRepository interface {
	// Create inserts a document
	Create(ctx context.Context, d *Document) error

	// Update saves all fields of an existing document
	Update(ctx context.Context, d *Document) error

	// Delete removes a document by ID
	Delete(ctx context.Context, id string) error

	// FindByID finds a document by ID regardless of owner
	FindByID(ctx context.Context, id string) (*Document, error)

	// FindAllByOwner lists a user's documents, newest first
	FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]*Document, error)
}
