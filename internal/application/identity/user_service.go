package identity

import (
	"context"

	"github.com/lawai/backend/internal/domain/identity"
	"github.com/lawai/backend/internal/domain/shared"
)

// UserService serves a user's own profile
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Current returns the authenticated user
func (s *UserService) Current(ctx context.Context, callerID string) (*UserResponse, error) {
	return s.GetByID(ctx, callerID, callerID)
}

// GetByID returns a user. Only the user themself may read the profile.
func (s *UserService) GetByID(ctx context.Context, callerID, id string) (*UserResponse, error) {
	user, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// Update applies a partial profile update. A new email must stay unique.
func (s *UserService) Update(ctx context.Context, callerID, id string, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	previousEmail := user.Email
	if err := user.Apply(req.patch()); err != nil {
		return nil, err
	}
	if user.Email != previousEmail && user.Email != "" {
		exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewValidationError("Email já registrado")
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

func (s *UserService) load(ctx context.Context, callerID, id string) (*identity.User, error) {
	if err := shared.Authorize(id, callerID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError("Usuário não encontrado")
		}
		return nil, err
	}
	return user, nil
}
