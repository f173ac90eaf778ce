package legal

import (
	"context"
	"testing"

	"github.com/lawai/backend/internal/domain/legal"
	"github.com/lawai/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCaseServiceWithMocks() (*CaseService, *MockCaseRepository, *MockClientRepository) {
	cases := new(MockCaseRepository)
	clients := new(MockClientRepository)
	return NewCaseService(cases, clients), cases, clients
}

func TestCaseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates case for own client with default status", func(t *testing.T) {
		svc, cases, clients := newCaseServiceWithMocks()
		clients.On("FindByID", ctx, int64(7)).Return(ownedClient(7, "u1"), nil)
		cases.On("Create", ctx, mock.AnythingOfType("*legal.Case")).Return(nil)

		value := decimal.RequireFromString("15000.50")
		resp, err := svc.Create(ctx, "u1", CreateCaseRequest{Title: "Revisional", ClientID: 7, Value: &value})

		require.NoError(t, err)
		assert.Equal(t, legal.CaseStatusActive, resp.Status)
		assert.True(t, value.Equal(*resp.Value))
		assert.Equal(t, "u1", resp.UserID)
	})

	t.Run("client owned by someone else is forbidden", func(t *testing.T) {
		svc, cases, clients := newCaseServiceWithMocks()
		clients.On("FindByID", ctx, int64(8)).Return(ownedClient(8, "u2"), nil)

		_, err := svc.Create(ctx, "u1", CreateCaseRequest{Title: "Revisional", ClientID: 8})

		assert.True(t, shared.IsForbidden(err))
		cases.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing client is not found", func(t *testing.T) {
		svc, _, clients := newCaseServiceWithMocks()
		clients.On("FindByID", ctx, int64(9)).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, "u1", CreateCaseRequest{Title: "Revisional", ClientID: 9})

		assert.True(t, shared.IsNotFound(err))
	})
}

func TestCaseService_Update_StatusOnlyKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	svc, cases, clients := newCaseServiceWithMocks()

	existing := ownedCase(4, "u1", 7)
	existing.Number = "0001-22"
	cases.On("FindByID", ctx, int64(4)).Return(existing, nil)
	cases.On("Update", ctx, existing).Return(nil)

	status := legal.CaseStatusArchived
	resp, err := svc.Update(ctx, "u1", 4, UpdateCaseRequest{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, legal.CaseStatusArchived, resp.Status)
	assert.Equal(t, "Processo", resp.Title)
	assert.Equal(t, "0001-22", resp.Number)
	assert.Equal(t, int64(7), resp.ClientID)
	clients.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCaseService_Update_ClientReassignment(t *testing.T) {
	ctx := context.Background()

	t.Run("foreign client is forbidden", func(t *testing.T) {
		svc, cases, clients := newCaseServiceWithMocks()
		cases.On("FindByID", ctx, int64(4)).Return(ownedCase(4, "u1", 7), nil)
		clients.On("FindByID", ctx, int64(20)).Return(ownedClient(20, "u2"), nil)

		target := int64(20)
		_, err := svc.Update(ctx, "u1", 4, UpdateCaseRequest{ClientID: &target})

		assert.True(t, shared.IsForbidden(err))
		cases.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing client is forbidden", func(t *testing.T) {
		svc, cases, clients := newCaseServiceWithMocks()
		cases.On("FindByID", ctx, int64(4)).Return(ownedCase(4, "u1", 7), nil)
		clients.On("FindByID", ctx, int64(21)).Return(nil, shared.ErrNotFound)

		target := int64(21)
		_, err := svc.Update(ctx, "u1", 4, UpdateCaseRequest{ClientID: &target})

		assert.True(t, shared.IsForbidden(err))
	})

	t.Run("own client is accepted", func(t *testing.T) {
		svc, cases, clients := newCaseServiceWithMocks()
		existing := ownedCase(4, "u1", 7)
		cases.On("FindByID", ctx, int64(4)).Return(existing, nil)
		clients.On("FindByID", ctx, int64(22)).Return(ownedClient(22, "u1"), nil)
		cases.On("Update", ctx, existing).Return(nil)

		target := int64(22)
		resp, err := svc.Update(ctx, "u1", 4, UpdateCaseRequest{ClientID: &target})

		require.NoError(t, err)
		assert.Equal(t, int64(22), resp.ClientID)
	})
}

func TestCaseService_Options(t *testing.T) {
	ctx := context.Background()
	svc, cases, clients := newCaseServiceWithMocks()

	withNumber := ownedCase(1, "u1", 7)
	withNumber.Title = "Despejo"
	withNumber.Number = "123"
	orphan := ownedCase(2, "u1", 8)
	orphan.Title = "Inventário"

	cases.On("FindAllByOwner", ctx, "u1", shared.Filter{}).Return([]*legal.Case{withNumber, orphan}, nil)
	client := ownedClient(7, "u1")
	client.Name = "João"
	clients.On("FindByIDs", ctx, []int64{7, 8}).Return([]*legal.Client{client}, nil)

	options, err := svc.Options(ctx, "u1")

	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, CaseOption{ID: 1, Label: "Despejo (123)", Value: "1", ClientName: "João", Status: "ativo"}, options[0])
	assert.Equal(t, "Inventário (Sem número)", options[1].Label)
	assert.Equal(t, "Cliente não especificado", options[1].ClientName)
}

func TestCaseService_Stats(t *testing.T) {
	ctx := context.Background()
	svc, cases, _ := newCaseServiceWithMocks()

	cases.On("CountByOwner", ctx, "u1").Return(int64(5), nil)
	cases.On("CountByStatus", ctx, "u1").Return(map[string]int64{"ativo": 3, "suspenso": 1, "outro": 1}, nil)

	stats, err := svc.Stats(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, map[string]int64{"ativo": 3, "arquivado": 0, "concluído": 0, "suspenso": 1}, stats.ByStatus)
}

func TestCaseService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, cases, _ := newCaseServiceWithMocks()

	cases.On("FindByID", ctx, int64(4)).Return(ownedCase(4, "u1", 7), nil)
	cases.On("Delete", ctx, int64(4)).Return(nil)

	require.NoError(t, svc.Delete(ctx, "u1", 4))
	assert.True(t, shared.IsForbidden(svc.Delete(ctx, "u2", 4)))
	cases.AssertNumberOfCalls(t, "Delete", 1)
}
