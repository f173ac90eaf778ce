package persistence

import (
	"context"

	"github.com/lawai/backend/internal/domain/legal"
	"github.com/lawai/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDeadlineRepository implements legal.DeadlineRepository using GORM
type GormDeadlineRepository struct {
	db *gorm.DB
}

// NewGormDeadlineRepository creates a new GormDeadlineRepository
func NewGormDeadlineRepository(db *gorm.DB) *GormDeadlineRepository {
	return &GormDeadlineRepository{db: db}
}

// Create creates a new deadline and assigns its ID
func (r *GormDeadlineRepository) Create(ctx context.Context, d *legal.Deadline) error {
	model := models.DeadlineModelFromDomain(d)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	d.ID = model.ID
	return nil
}

// Update updates an existing deadline
func (r *GormDeadlineRepository) Update(ctx context.Context, d *legal.Deadline) error {
	model := models.DeadlineModelFromDomain(d)
	result := r.db.WithContext(ctx).
		Model(&models.DeadlineModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(model)
	return rowsAffected(result)
}

// Delete deletes a deadline by ID
func (r *GormDeadlineRepository) Delete(ctx context.Context, id int64) error {
	return rowsAffected(r.db.WithContext(ctx).Delete(&models.DeadlineModel{}, "id = ?", id))
}

// FindByID finds a deadline by ID
func (r *GormDeadlineRepository) FindByID(ctx context.Context, id int64) (*legal.Deadline, error) {
	var model models.DeadlineModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllByOwner lists a user's deadlines ordered by due date ascending
func (r *GormDeadlineRepository) FindAllByOwner(ctx context.Context, ownerID string, filter legal.DeadlineFilter) ([]*legal.Deadline, error) {
	var deadlineModels []models.DeadlineModel
	query := r.scope(r.db.WithContext(ctx), ownerID, filter).
		Order("due_date ASC, id ASC")
	query = applyPaging(query, filter.Offset, filter.Limit)

	if err := query.Find(&deadlineModels).Error; err != nil {
		return nil, err
	}
	deadlines := make([]*legal.Deadline, len(deadlineModels))
	for i := range deadlineModels {
		deadlines[i] = deadlineModels[i].ToDomain()
	}
	return deadlines, nil
}

// CountByOwner counts a user's deadlines matching the filter; paging is ignored
func (r *GormDeadlineRepository) CountByOwner(ctx context.Context, ownerID string, filter legal.DeadlineFilter) (int64, error) {
	var count int64
	err := r.scope(r.db.WithContext(ctx), ownerID, filter).Count(&count).Error
	return count, err
}

func (r *GormDeadlineRepository) scope(db *gorm.DB, ownerID string, filter legal.DeadlineFilter) *gorm.DB {
	query := db.Model(&models.DeadlineModel{}).Where("user_id = ?", ownerID)
	if filter.CaseID != nil {
		query = query.Where("case_id = ?", *filter.CaseID)
	}
	if filter.Completed != nil {
		query = query.Where("is_completed = ?", *filter.Completed)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", filter.DueFrom.UTC())
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", filter.DueTo.UTC())
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date < ?", filter.DueBefore.UTC())
	}
	return query
}

var _ legal.DeadlineRepository = (*GormDeadlineRepository)(nil)
