package legal

import (
	"math"
	"time"
)

// Tier is the urgency bucket of a deadline
type Tier string

const (
	TierOverdue   Tier = "overdue"
	TierUrgent    Tier = "urgent"
	TierUpcoming  Tier = "upcoming"
	TierScheduled Tier = "scheduled"
)

// Label returns the Portuguese status shown to users
func (t Tier) Label() string {
	switch t {
	case TierOverdue:
		return "atrasado"
	case TierUrgent:
		return "urgente"
	case TierUpcoming:
		return "próximo"
	default:
		return "agendado"
	}
}

// Classification is the classifier output for one deadline
type Classification struct {
	RemainingDays int
	Tier          Tier
}

const day = 24 * time.Hour

// Classify computes whole days remaining until dueAt (floored, so anything
// already past yields a negative count) and maps it to a tier.
func Classify(dueAt, now time.Time) Classification {
	remaining := int(math.Floor(float64(dueAt.Sub(now)) / float64(day)))

	var tier Tier
	switch {
	case remaining < 0:
		tier = TierOverdue
	case remaining <= 1:
		tier = TierUrgent
	case remaining <= 3:
		tier = TierUpcoming
	default:
		tier = TierScheduled
	}

	return Classification{RemainingDays: remaining, Tier: tier}
}
