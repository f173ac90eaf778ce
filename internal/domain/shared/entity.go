package shared

import (
	"time"
)

// Timestamps provides the creation/update bookkeeping shared by all entities
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTimestamps returns timestamps initialised to now
func NewTimestamps() Timestamps {
	now := time.Now().UTC()
	return Timestamps{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch marks the entity as modified
func (t *Timestamps) Touch() {
	t.UpdatedAt = time.Now().UTC()
}

// OwnedEntity carries the owner reference stamped at creation.
// The owner is never reassigned afterwards.
type OwnedEntity struct {
	UserID string
}

// OwnerID implements Owned
func (e OwnedEntity) OwnerID() string {
	return e.UserID
}
