package persistence

import (
	"context"

	"github.com/lawai/backend/internal/domain/legal"
	"github.com/lawai/backend/internal/domain/shared"
	"github.com/lawai/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCaseRepository implements legal.CaseRepository using GORM
type GormCaseRepository struct {
	db *gorm.DB
}

// NewGormCaseRepository creates a new GormCaseRepository
func NewGormCaseRepository(db *gorm.DB) *GormCaseRepository {
	return &GormCaseRepository{db: db}
}

// Create creates a new case and assigns its ID
func (r *GormCaseRepository) Create(ctx context.Context, c *legal.Case) error {
	model := models.CaseModelFromDomain(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	c.ID = model.ID
	return nil
}

// Update updates an existing case
func (r *GormCaseRepository) Update(ctx context.Context, c *legal.Case) error {
	model := models.CaseModelFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&models.CaseModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(model)
	return rowsAffected(result)
}

// Delete deletes a case by ID; linked deadlines keep existing with a null case_id
func (r *GormCaseRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Mirrors ON DELETE SET NULL for stores without FK enforcement.
		if err := tx.Model(&models.DeadlineModel{}).
			Where("case_id = ?", id).
			Update("case_id", nil).Error; err != nil {
			return translateError(err)
		}
		return rowsAffected(tx.Delete(&models.CaseModel{}, "id = ?", id))
	})
}

// FindByID finds a case by ID
func (r *GormCaseRepository) FindByID(ctx context.Context, id int64) (*legal.Case, error) {
	var model models.CaseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the cases with the given IDs
func (r *GormCaseRepository) FindByIDs(ctx context.Context, ids []int64) ([]*legal.Case, error) {
	if len(ids) == 0 {
		return []*legal.Case{}, nil
	}
	var caseModels []models.CaseModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&caseModels).Error; err != nil {
		return nil, err
	}
	return casesToDomain(caseModels), nil
}

// FindAllByOwner lists a user's cases, optionally restricted to one client
func (r *GormCaseRepository) FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]*legal.Case, error) {
	var caseModels []models.CaseModel
	query := r.db.WithContext(ctx).Model(&models.CaseModel{}).Where("user_id = ?", ownerID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&caseModels).Error; err != nil {
		return nil, err
	}
	return casesToDomain(caseModels), nil
}

// CountByOwner counts a user's cases
func (r *GormCaseRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CaseModel{}).Where("user_id = ?", ownerID).Count(&count).Error
	return count, err
}

// CountByStatus groups a user's cases by status
func (r *GormCaseRepository) CountByStatus(ctx context.Context, ownerID string) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.CaseModel{}).
		Select("status, COUNT(*) AS total").
		Where("user_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *GormCaseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	query = query.Order(caseSort.order(filter.OrderBy, filter.OrderDir))
	return applyPaging(query, filter.Offset, filter.Limit)
}

func casesToDomain(caseModels []models.CaseModel) []*legal.Case {
	cases := make([]*legal.Case, len(caseModels))
	for i := range caseModels {
		cases[i] = caseModels[i].ToDomain()
	}
	return cases
}

var _ legal.CaseRepository = (*GormCaseRepository)(nil)
