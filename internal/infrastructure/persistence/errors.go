package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lawai/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes the repositories translate
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// ErrStillReferenced is returned when a row cannot be removed or written
// because of a foreign key constraint
var ErrStillReferenced = shared.NewDomainError(shared.CodeInvalidState, "Registro ainda referenciado por outros dados")

// translateError maps driver errors onto domain errors. Unknown errors are
// returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrStillReferenced
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return ErrStillReferenced
		case pgUniqueViolation:
			return shared.ErrAlreadyExists
		}
	}
	return err
}

// rowsAffected turns a zero-row write into ErrNotFound
func rowsAffected(result *gorm.DB) error {
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyPaging applies offset/limit. A non-positive limit means no limit.
func applyPaging(query *gorm.DB, offset, limit int) *gorm.DB {
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query
}
