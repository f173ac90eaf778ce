package persistence

import (
	"context"
	"strings"

	"github.com/lawai/backend/internal/domain/legal"
	"github.com/lawai/backend/internal/domain/shared"
	"github.com/lawai/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormClientRepository implements legal.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Create creates a new client and assigns its ID
func (r *GormClientRepository) Create(ctx context.Context, client *legal.Client) error {
	model := models.ClientModelFromDomain(client)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	client.ID = model.ID
	return nil
}

// Update updates an existing client. The owner column is never rewritten.
func (r *GormClientRepository) Update(ctx context.Context, client *legal.Client) error {
	model := models.ClientModelFromDomain(client)
	result := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(model)
	return rowsAffected(result)
}

// Delete deletes a client by ID. A client still referenced by cases
// yields an INVALID_STATE error.
func (r *GormClientRepository) Delete(ctx context.Context, id int64) error {
	return rowsAffected(r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id))
}

// FindByID finds a client by ID
func (r *GormClientRepository) FindByID(ctx context.Context, id int64) (*legal.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the clients with the given IDs
func (r *GormClientRepository) FindByIDs(ctx context.Context, ids []int64) ([]*legal.Client, error) {
	if len(ids) == 0 {
		return []*legal.Client{}, nil
	}
	var clientModels []models.ClientModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&clientModels).Error; err != nil {
		return nil, err
	}
	clients := make([]*legal.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = clientModels[i].ToDomain()
	}
	return clients, nil
}

// FindAllByOwner lists a user's clients
func (r *GormClientRepository) FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]*legal.Client, error) {
	var clientModels []models.ClientModel
	query := r.db.WithContext(ctx).Model(&models.ClientModel{}).Where("user_id = ?", ownerID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}
	clients := make([]*legal.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = clientModels[i].ToDomain()
	}
	return clients, nil
}

func (r *GormClientRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(document) LIKE ?",
			pattern, pattern, pattern)
	}
	query = query.Order(clientSort.order(filter.OrderBy, filter.OrderDir))
	return applyPaging(query, filter.Offset, filter.Limit)
}

var _ legal.ClientRepository = (*GormClientRepository)(nil)
