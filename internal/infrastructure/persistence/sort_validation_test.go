package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirection(t *testing.T) {
	for _, in := range []string{"asc", "ASC", "  Asc "} {
		assert.Equal(t, "ASC", direction(in), in)
	}
	for _, in := range []string{"", "desc", "DESC", "ascending", "ASC; DROP TABLE clients;--"} {
		assert.Equal(t, "DESC", direction(in), in)
	}
}

func TestSortColumns_Column(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "created_at"},
		{"name", "name"},
		{"  email ", "email"},
		{"NAME", "created_at"},
		{"user_id", "created_at"},
		{"name users", "created_at"},
		{"name'--", "created_at"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clientSort.column(tt.input), tt.input)
	}
}

func TestSortColumns_NeverExposeOwner(t *testing.T) {
	for name, s := range map[string]sortColumns{"clients": clientSort, "cases": caseSort, "documents": documentSort} {
		assert.True(t, s.allowed["created_at"], name)
		assert.True(t, s.allowed["updated_at"], name)
		assert.False(t, s.allowed["user_id"], name)
	}
}

func TestSortColumns_RejectsInjection(t *testing.T) {
	payloads := []string{
		"id; DROP TABLE users;--",
		"id' OR '1'='1",
		"id UNION SELECT * FROM users",
		"CASE WHEN 1=1 THEN id ELSE name END",
		"id/**/;DROP TABLE users",
		"id\n; DROP TABLE users",
	}
	for _, p := range payloads {
		assert.Equal(t, "created_at DESC, id DESC", caseSort.order(p, p), p)
	}
}

func TestSortColumns_Order(t *testing.T) {
	assert.Equal(t, "created_at DESC, id DESC", clientSort.order("", ""))
	assert.Equal(t, "name ASC, id ASC", clientSort.order("name", "asc"))
	assert.Equal(t, "id ASC", caseSort.order("id", "ASC"))
	assert.Equal(t, "value DESC, id DESC", caseSort.order("value", ""))
	assert.Equal(t, "title ASC, id ASC", documentSort.order("title", "asc"))
}
