package persistence

import (
	"strings"
)

// sortColumns whitelists the columns a list query may order by. Anything
// else falls back to the default column, so user input never reaches SQL.
type sortColumns struct {
	allowed  map[string]bool
	fallback string
}

func newSortColumns(fallback string, columns ...string) sortColumns {
	allowed := make(map[string]bool, len(columns)+1)
	for _, c := range columns {
		allowed[c] = true
	}
	allowed[fallback] = true
	return sortColumns{allowed: allowed, fallback: fallback}
}

var (
	clientSort   = newSortColumns("created_at", "id", "updated_at", "name", "email")
	caseSort     = newSortColumns("created_at", "id", "updated_at", "title", "number", "status", "value")
	documentSort = newSortColumns("created_at", "updated_at", "title", "status")
)

// column returns field when whitelisted, else the fallback
func (s sortColumns) column(field string) string {
	field = strings.TrimSpace(field)
	if s.allowed[field] {
		return field
	}
	return s.fallback
}

// order builds the ORDER BY expression with id as tie-breaker
func (s sortColumns) order(field, dir string) string {
	col := s.column(field)
	d := direction(dir)
	if col == "id" {
		return "id " + d
	}
	return col + " " + d + ", id " + d
}

// direction accepts asc in any case; everything else is DESC
func direction(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}
