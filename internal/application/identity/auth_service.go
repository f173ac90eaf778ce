package identity

import (
	"context"
	"strings"
	"time"

	"github.com/lawai/backend/internal/domain/identity"
	"github.com/lawai/backend/internal/domain/shared"
	"github.com/lawai/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for an unknown login
var ErrInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Credenciais inválidas")

// AuthService handles registration, login and logout
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates an account. Emails are unique.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	user, err := identity.NewUser(req.ID, req.Email)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewValidationError("Email já registrado")
	}

	user.SetName(req.FirstName, req.LastName)
	if err := user.SetProfileImageURL(req.ProfileImageURL); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	response := ToUserResponse(user)
	return &response, nil
}

// Login issues an access token for a registered email
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Identifier()))
	if email == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if shared.IsNotFound(err) {
			s.logger.Warn("Login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	issued, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID))
	return &TokenResponse{
		AccessToken: issued.AccessToken,
		TokenType:   issued.TokenType,
	}, nil
}

// Logout revokes the token with the given jti until it expires
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" || !expiresAt.After(time.Now()) {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, jti, expiresAt); err != nil {
		s.logger.Error("Failed to revoke token", zap.Error(err))
		return err
	}
	return nil
}
