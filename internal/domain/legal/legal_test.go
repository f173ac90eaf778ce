package legal

import (
	"testing"
	"time"

	"github.com/lawai/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("stamps owner and trims name", func(t *testing.T) {
		c, err := NewClient("u1", "  Maria Souza ")

		require.NoError(t, err)
		assert.Equal(t, "u1", c.OwnerID())
		assert.Equal(t, "Maria Souza", c.Name)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewClient("u1", "   ")
		assert.True(t, shared.IsValidation(err))
	})
}

func TestClient_Apply(t *testing.T) {
	c, err := NewClient("u1", "Maria")
	require.NoError(t, err)
	c.SetContact("maria@x.com", "1199", "Rua A")

	phone := "2188"
	require.NoError(t, c.Apply(ClientPatch{Phone: &phone}))

	assert.Equal(t, "Maria", c.Name)
	assert.Equal(t, "maria@x.com", c.Email)
	assert.Equal(t, "2188", c.Phone)
	assert.Equal(t, "u1", c.UserID)
}

func TestCase_ApplyStatusOnly(t *testing.T) {
	c, err := NewCase("u1", "Ação de cobrança", 7)
	require.NoError(t, err)
	c.Number = "0001234-55.2024.8.26.0100"

	status := CaseStatusSuspended
	require.NoError(t, c.Apply(CasePatch{Status: &status}))

	assert.Equal(t, CaseStatusSuspended, c.Status)
	assert.Equal(t, "Ação de cobrança", c.Title)
	assert.Equal(t, "0001234-55.2024.8.26.0100", c.Number)
	assert.Equal(t, int64(7), c.ClientID)
}

func TestCase_Defaults(t *testing.T) {
	c, err := NewCase("u1", "Inventário", 1)
	require.NoError(t, err)

	assert.Equal(t, CaseStatusActive, c.Status)
	assert.Equal(t, "Inventário (Sem número)", c.Label())

	c.Number = "123"
	assert.Equal(t, "Inventário (123)", c.Label())

	neg := decimal.NewFromInt(-1)
	assert.Error(t, c.SetValue(&neg))

	_, err = NewCase("u1", "x", 0)
	assert.True(t, shared.IsValidation(err))
}

func TestCasePatch_ChangesClient(t *testing.T) {
	same, other, zero := int64(3), int64(4), int64(0)

	assert.False(t, CasePatch{}.ChangesClient(3))
	assert.False(t, CasePatch{ClientID: &same}.ChangesClient(3))
	assert.False(t, CasePatch{ClientID: &zero}.ChangesClient(3))
	assert.True(t, CasePatch{ClientID: &other}.ChangesClient(3))
}

func TestNewDeadline(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	t.Run("creates pending deadline", func(t *testing.T) {
		d, err := NewDeadline("u1", "Contestação", now.Add(time.Hour), now)

		require.NoError(t, err)
		assert.False(t, d.IsCompleted)
		assert.Equal(t, PriorityMedium, d.Priority)
		assert.Nil(t, d.CaseID)
	})

	t.Run("rejects due date in the past or now", func(t *testing.T) {
		for _, due := range []time.Time{now, now.Add(-time.Second), now.AddDate(-1, 0, 0)} {
			_, err := NewDeadline("u1", "Recurso", due, now)
			assert.True(t, shared.IsValidation(err))
		}
	})

	t.Run("rejects blank title", func(t *testing.T) {
		_, err := NewDeadline("u1", " ", now.Add(time.Hour), now)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestDeadline_CompleteAndPatch(t *testing.T) {
	now := time.Now()
	d, err := NewDeadline("u1", "Réplica", now.Add(48*time.Hour), now)
	require.NoError(t, err)

	d.Complete()
	d.Complete()
	assert.True(t, d.IsCompleted)
	assert.False(t, d.IsOverdue(now.Add(72*time.Hour)))

	bad := "urgentíssimo"
	assert.Error(t, d.Apply(DeadlinePatch{Priority: &bad}))

	high := "HIGH"
	require.NoError(t, d.Apply(DeadlinePatch{Priority: &high}))
	assert.Equal(t, PriorityHigh, d.Priority)

	caseID := int64(9)
	assert.True(t, DeadlinePatch{CaseID: &caseID}.ChangesCase(nil))
	require.NoError(t, d.Apply(DeadlinePatch{CaseID: &caseID}))
	assert.False(t, DeadlinePatch{CaseID: &caseID}.ChangesCase(d.CaseID))

	zero := int64(0)
	assert.Error(t, d.Apply(DeadlinePatch{CaseID: &zero}))

	unlink := DeadlinePatch{UnlinkCase: true}
	assert.False(t, unlink.ChangesCase(d.CaseID))
	require.NoError(t, d.Apply(unlink))
	assert.Nil(t, d.CaseID)
}

func TestDocument(t *testing.T) {
	d, err := NewDocument("u1", "Contrato", "pdf")
	require.NoError(t, err)

	assert.Len(t, d.ID, 36)
	assert.Equal(t, DocumentStatusDraft, d.Status)
	assert.False(t, d.HasFile())
	assert.Equal(t, "documents/u1/"+d.ID+"/a_b.txt", d.StorageKey("a/b.txt"))

	d.FileInfo = &FileInfo{Filename: "a.txt", Size: 3, ContentType: "text/plain", StorageKey: "k"}
	parsed := ParseFileInfo(d.FileInfo.String())
	require.NotNil(t, parsed)
	assert.Equal(t, *d.FileInfo, *parsed)
	assert.True(t, parsed.IsText())
	assert.Nil(t, ParseFileInfo("{'filename': 'legacy'}"))

	_, err = NewDocument("u1", "Contrato", "")
	assert.True(t, shared.IsValidation(err))
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	ago := func(seconds int) time.Time { return now.Add(-time.Duration(seconds) * time.Second) }

	tests := []struct {
		seconds int
		want    string
	}{
		{0, "agora mesmo"},
		{59, "agora mesmo"},
		{60, "há 1 minuto"},
		{150, "há 2 minutos"},
		{3600, "há 1 hora"},
		{7200, "há 2 horas"},
		{86400, "há 1 dia"},
		{3 * 86400, "há 3 dias"},
		{604800, "há 1 semana"},
		{3 * 604800, "há 3 semanas"},
		{2592000, "há 1 mês"},
		{5 * 2592000, "há 5 meses"},
		{31536000, "há 1 ano"},
		{3 * 31536000, "há 3 anos"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRelativeTime(ago(tt.seconds), now), "%d seconds", tt.seconds)
	}
}
