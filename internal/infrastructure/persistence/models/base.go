package models

import (
	"time"

	"github.com/lawai/backend/internal/domain/shared"
)

// TimestampModel carries the bookkeeping columns present on every table
type TimestampModel struct {
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts the columns to domain timestamps
func (m TimestampModel) ToDomain() shared.Timestamps {
	return shared.Timestamps{
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainTimestamps populates the columns from domain timestamps
func (m *TimestampModel) FromDomainTimestamps(t shared.Timestamps) {
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
}

// OwnedModel is embedded by every row that belongs to a user
type OwnedModel struct {
	TimestampModel
	UserID string `gorm:"type:varchar(255);not null;index"`
}

// FromDomainOwned populates owner and timestamp columns
func (m *OwnedModel) FromDomainOwned(t shared.Timestamps, o shared.OwnedEntity) {
	m.FromDomainTimestamps(t)
	m.UserID = o.UserID
}

// Owner converts the owner column to the domain value
func (m OwnedModel) Owner() shared.OwnedEntity {
	return shared.OwnedEntity{UserID: m.UserID}
}
