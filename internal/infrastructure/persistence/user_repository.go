package persistence

import (
	"context"
	"strings"

	"github.com/lawai/backend/internal/domain/identity"
	"github.com/lawai/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository stores accounts in the users table
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts user; a taken email surfaces as ErrAlreadyExists
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// Update writes the profile columns. id and created_at are never touched.
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	result := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Select("email", "first_name", "last_name", "profile_image_url", "updated_at").
		Updates(model)
	return rowsAffected(result)
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByEmail looks a user up by email, ignoring case and surrounding spaces
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Scopes(emailEquals(email)).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// ExistsByEmail reports whether an account already uses email
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).Scopes(emailEquals(email)).Count(&n).Error
	return n > 0, err
}

// emailEquals matches the LOWER(email) unique index
func emailEquals(email string) func(*gorm.DB) *gorm.DB {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(email) = ?", normalized)
	}
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
