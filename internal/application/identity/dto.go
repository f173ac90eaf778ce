package identity

import (
	"time"

	"github.com/lawai/backend/internal/domain/identity"
)

// RegisterRequest represents a new account
type RegisterRequest struct {
	ID              string `json:"id" binding:"omitempty,max=255"`
	Email           string `json:"email" binding:"required,email,max=200"`
	FirstName       string `json:"first_name" binding:"max=100"`
	LastName        string `json:"last_name" binding:"max=100"`
	ProfileImageURL string `json:"profile_image_url" binding:"omitempty,max=1000"`
}

// LoginInput identifies the account to sign in. Username carries the email,
// as sent by OAuth2 password-form clients.
type LoginInput struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
}

// Identifier returns the email used to sign in
func (i LoginInput) Identifier() string {
	if i.Username != "" {
		return i.Username
	}
	return i.Email
}

// TokenResponse is the result of a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UpdateUserRequest represents a partial profile update
type UpdateUserRequest struct {
	Email           *string `json:"email" binding:"omitempty,email,max=200"`
	FirstName       *string `json:"first_name" binding:"omitempty,max=100"`
	LastName        *string `json:"last_name" binding:"omitempty,max=100"`
	ProfileImageURL *string `json:"profile_image_url" binding:"omitempty,max=1000"`
}

func (r UpdateUserRequest) patch() identity.UserPatch {
	return identity.UserPatch{
		Email:           r.Email,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		ProfileImageURL: r.ProfileImageURL,
	}
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToUserResponse converts a domain user to its response form
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
