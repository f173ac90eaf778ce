package persistence

import (
	"context"

	"github.com/lawai/backend/internal/domain/legal"
	"github.com/lawai/backend/internal/domain/shared"
	"github.com/lawai/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDocumentRepository implements legal.DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Create creates a new document
func (r *GormDocumentRepository) Create(ctx context.Context, d *legal.Document) error {
	return translateError(r.db.WithContext(ctx).Create(models.DocumentModelFromDomain(d)).Error)
}

// Update updates an existing document
func (r *GormDocumentRepository) Update(ctx context.Context, d *legal.Document) error {
	model := models.DocumentModelFromDomain(d)
	result := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(model)
	return rowsAffected(result)
}

// Delete deletes a document by ID
func (r *GormDocumentRepository) Delete(ctx context.Context, id string) error {
	return rowsAffected(r.db.WithContext(ctx).Delete(&models.DocumentModel{}, "id = ?", id))
}

// FindByID finds a document by ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id string) (*legal.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllByOwner lists a user's documents, newest first unless ordered otherwise
func (r *GormDocumentRepository) FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]*legal.Document, error) {
	var documentModels []models.DocumentModel
	query := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("user_id = ?", ownerID).
		Order(documentSort.order(filter.OrderBy, filter.OrderDir))
	query = applyPaging(query, filter.Offset, filter.Limit)

	if err := query.Find(&documentModels).Error; err != nil {
		return nil, err
	}
	documents := make([]*legal.Document, len(documentModels))
	for i := range documentModels {
		documents[i] = documentModels[i].ToDomain()
	}
	return documents, nil
}

var _ legal.DocumentRepository = (*GormDocumentRepository)(nil)
