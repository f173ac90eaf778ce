package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lawai/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"record not found", gorm.ErrRecordNotFound, shared.ErrNotFound},
		{"wrapped record not found", fmt.Errorf("query: %w", gorm.ErrRecordNotFound), shared.ErrNotFound},
		{"gorm fk violation", gorm.ErrForeignKeyViolated, shared.ErrInvalidState},
		{"gorm duplicate", gorm.ErrDuplicatedKey, shared.ErrAlreadyExists},
		{"postgres fk violation", &pgconn.PgError{Code: "23503"}, shared.ErrInvalidState},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, shared.ErrAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.in), tt.want)
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "57014"}
		assert.Same(t, pgErr, translateError(pgErr))
		assert.NoError(t, translateError(nil))
	})
}

func newMockClientRepository(t *testing.T) (*GormClientRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewGormClientRepository(gormDB), mock, mockDB
}

func TestGormClientRepository_DeleteReferenced(t *testing.T) {
	repo, mock, mockDB := newMockClientRepository(t)
	defer mockDB.Close()

	mock.ExpectExec(`DELETE FROM "clients" WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "cases_client_id_fkey"})

	err := repo.Delete(context.Background(), 7)

	assert.ErrorIs(t, err, ErrStillReferenced)
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeInvalidState, de.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormClientRepository_FindAllByOwnerQuery(t *testing.T) {
	repo, mock, mockDB := newMockClientRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "email"}).
		AddRow(int64(1), "u1", "Maria", "maria@example.com")

	mock.ExpectQuery(`SELECT \* FROM "clients" WHERE user_id = \$1 AND \(LOWER\(name\) LIKE \$2 OR LOWER\(email\) LIKE \$3 OR LOWER\(document\) LIKE \$4\) ORDER BY created_at DESC, id DESC LIMIT \$5`).
		WithArgs("u1", "%mar%", "%mar%", "%mar%", 50).
		WillReturnRows(rows)

	filter := shared.DefaultFilter()
	filter.Search = " Mar "
	list, err := repo.FindAllByOwner(context.Background(), "u1", filter)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "maria@example.com", list[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
