package handler_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/lawai/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var limitParamDefault = regexp.MustCompile(`@Param\s+limit\s+query\s+int\b.*default\((\d+)\)`)

// The documented page size must match what the list endpoints apply.
func TestLimitParamDefaultMatchesFilter(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)

	found := 0
	for _, file := range files {
		src, err := os.ReadFile(file)
		require.NoError(t, err)
		for _, m := range limitParamDefault.FindAllSubmatch(src, -1) {
			n, err := strconv.Atoi(string(m[1]))
			require.NoError(t, err)
			assert.Equal(t, shared.DefaultLimit, n, file)
			found++
		}
	}
	assert.GreaterOrEqual(t, found, 4)
}
