package identity

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lawai/backend/internal/domain/shared"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is an account of the law office. Its ID is opaque and never changes;
// every client, case, deadline and document references it as owner.
type User struct {
	shared.Timestamps
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// NewUser creates a user. An empty id is replaced by a generated UUID.
func NewUser(id, email string) (*User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.New().String()
	}
	if len(id) > 255 {
		return nil, shared.NewValidationError("User id cannot exceed 255 characters")
	}

	u := &User{
		Timestamps: shared.NewTimestamps(),
		ID:         id,
	}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	return u, nil
}

// SetEmail sets the user's email. An empty email is allowed.
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	u.Email = email
	u.Touch()
	return nil
}

// SetName sets first and last name
func (u *User) SetName(firstName, lastName string) {
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.Touch()
}

// SetProfileImageURL sets the avatar URL
func (u *User) SetProfileImageURL(url string) error {
	if len(url) > 1000 {
		return shared.NewValidationError("Profile image URL cannot exceed 1000 characters")
	}
	u.ProfileImageURL = strings.TrimSpace(url)
	u.Touch()
	return nil
}

// FullName joins first and last name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserPatch lists the fields a user may change on their own profile.
// Nil fields are left untouched.
type UserPatch struct {
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
}

// Apply applies the non-nil fields of the patch
func (u *User) Apply(p UserPatch) error {
	if p.Email != nil {
		if err := u.SetEmail(*p.Email); err != nil {
			return err
		}
	}
	first, last := u.FirstName, u.LastName
	if p.FirstName != nil {
		first = *p.FirstName
	}
	if p.LastName != nil {
		last = *p.LastName
	}
	if p.FirstName != nil || p.LastName != nil {
		u.SetName(first, last)
	}
	if p.ProfileImageURL != nil {
		if err := u.SetProfileImageURL(*p.ProfileImageURL); err != nil {
			return err
		}
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewValidationError("Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewValidationError("Invalid email format")
	}
	return nil
}
