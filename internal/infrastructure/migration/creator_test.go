package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/lawai/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add clients table", "add_clients_table"},
		{"Add-Deadline-Index", "add_deadline_index"},
		{"ADD__CASE__VALUE", "add_case_value"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"índice prazos", "ndice_prazos"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")
	now := time.Date(2026, 4, 2, 13, 4, 5, 0, time.UTC)

	f, err := CreateMigration(dir, "add documents index", "Speeds up listing", now)
	require.NoError(t, err)

	assert.Equal(t, "20260402130405", f.Version)
	assert.Equal(t, filepath.Join(dir, "20260402130405_add_documents_index.up.sql"), f.UpPath)
	assert.Equal(t, filepath.Join(dir, "20260402130405_add_documents_index.down.sql"), f.DownPath)

	up, err := os.ReadFile(f.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: add_documents_index\n")
	assert.Contains(t, string(up), "Speeds up listing")

	down, err := os.ReadFile(f.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(rollback)")

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, err := CreateMigration(dir, "add documents index", "", now)
		assert.Error(t, err)
	})

	t.Run("rejects empty slug", func(t *testing.T) {
		_, err := CreateMigration(dir, "!!!", "", now)
		assert.Error(t, err)
	})
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"20260301090100_create_legal_tables.up.sql":   {Data: []byte("--")},
		"20260301090100_create_legal_tables.down.sql": {Data: []byte("--")},
		"20260301090000_create_users.up.sql":          {Data: []byte("--")},
		"20260301090000_create_users.down.sql":        {Data: []byte("--")},
		"README.md":                                   {Data: []byte("docs")},
		"draft.up.sql":                                {Data: []byte("--")},
		"nested/20260401000000_x.up.sql":              {Data: []byte("--")},
	}

	entries, err := ListMigrations(fsys)

	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Version: 20260301090000, Name: "create_users"},
		{Version: 20260301090100, Name: "create_legal_tables"},
	}, entries)
}

func TestListMigrations_Empty(t *testing.T) {
	entries, err := ListMigrations(fstest.MapFS{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		_, err := migrations.FS.Open(e.String() + ".down.sql")
		assert.NoError(t, err, "missing rollback for %s", e)
	}
}
