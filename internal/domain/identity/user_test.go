package identity

import (
	"testing"

	"github.com/lawai/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("keeps the supplied id", func(t *testing.T) {
		user, err := NewUser("replit-42", "Ana@Example.com")

		require.NoError(t, err)
		assert.Equal(t, "replit-42", user.ID)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("generates an id when empty", func(t *testing.T) {
		user, err := NewUser("  ", "")

		require.NoError(t, err)
		assert.Len(t, user.ID, 36)
		assert.Empty(t, user.Email)
	})

	t.Run("rejects an invalid email", func(t *testing.T) {
		_, err := NewUser("", "not-an-email")

		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestUser_Apply(t *testing.T) {
	user, err := NewUser("u1", "a@b.com")
	require.NoError(t, err)
	user.SetName("Ana", "Silva")

	first := "Beatriz"
	err = user.Apply(UserPatch{FirstName: &first})

	require.NoError(t, err)
	assert.Equal(t, "Beatriz", user.FirstName)
	assert.Equal(t, "Silva", user.LastName)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "Beatriz Silva", user.FullName())

	bad := "nope"
	err = user.Apply(UserPatch{Email: &bad})
	assert.Error(t, err)
	assert.Equal(t, "a@b.com", user.Email)
}
