package models

import (
	"github.com/lawai/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
// Email is nullable so that several accounts without email can coexist
// under the unique index.
type UserModel struct {
	TimestampModel
	ID              string  `gorm:"type:varchar(255);primaryKey"`
	Email           *string `gorm:"type:varchar(255);uniqueIndex"`
	FirstName       string  `gorm:"type:varchar(255)"`
	LastName        string  `gorm:"type:varchar(255)"`
	ProfileImageURL string  `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		Timestamps:      m.TimestampModel.ToDomain(),
		ID:              m.ID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		ProfileImageURL: m.ProfileImageURL,
	}
	if m.Email != nil {
		u.Email = *m.Email
	}
	return u
}

// FromDomain populates the persistence model from a domain User entity
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainTimestamps(u.Timestamps)
	m.ID = u.ID
	m.Email = nil
	if u.Email != "" {
		email := u.Email
		m.Email = &email
	}
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.ProfileImageURL = u.ProfileImageURL
}

// UserModelFromDomain creates a new persistence model from a domain User entity
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
