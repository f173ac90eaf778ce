package legal

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/lawai/backend/internal/domain/legal"
	"github.com/lawai/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClientService_Create(t *testing.T) {
	ctx := context.Background()
	faker := gofakeit.New(0)
	repo := new(MockClientRepository)
	svc := NewClientService(repo)

	req := CreateClientRequest{
		Name:     faker.Name(),
		Email:    faker.Email(),
		Phone:    faker.Phone(),
		Document: "123.456.789-00",
	}
	repo.On("Create", ctx, mock.MatchedBy(func(c *legal.Client) bool {
		return c.UserID == "u1" && c.Name == req.Name
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*legal.Client).ID = 10
	}).Return(nil)

	resp, err := svc.Create(ctx, "u1", req)

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, req.Email, resp.Email)
	assert.Equal(t, "123.456.789-00", resp.Document)
	repo.AssertExpectations(t)
}

func TestClientService_List_NormalizesPaging(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := NewClientService(repo)

	repo.On("FindAllByOwner", ctx, "u1", mock.MatchedBy(func(f shared.Filter) bool {
		return f.Offset == 0 && f.Limit == shared.DefaultLimit && f.Search == "silva"
	})).Return([]*legal.Client{ownedClient(1, "u1"), ownedClient(2, "u1")}, nil)

	list, err := svc.List(ctx, "u1", ClientListQuery{Search: "silva"})

	require.NoError(t, err)
	assert.Len(t, list, 2)
	repo.AssertExpectations(t)
}

func TestClientService_CrossOwnerAccess(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := NewClientService(repo)
	repo.On("FindByID", ctx, int64(5)).Return(ownedClient(5, "u2"), nil)

	_, err := svc.GetByID(ctx, "u1", 5)
	assert.True(t, shared.IsForbidden(err))

	name := "Outro"
	_, err = svc.Update(ctx, "u1", 5, UpdateClientRequest{Name: &name})
	assert.True(t, shared.IsForbidden(err))

	err = svc.Delete(ctx, "u1", 5)
	assert.True(t, shared.IsForbidden(err))

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestClientService_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := NewClientService(repo)
	repo.On("FindByID", ctx, int64(99)).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(ctx, "u1", 99)

	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
	assert.Equal(t, "Cliente não encontrado", err.Error())
}

func TestClientService_Update_Partial(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := NewClientService(repo)

	existing := ownedClient(3, "u1")
	existing.Email = "old@example.com"
	repo.On("FindByID", ctx, int64(3)).Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)

	notes := "VIP"
	resp, err := svc.Update(ctx, "u1", 3, UpdateClientRequest{Notes: &notes})

	require.NoError(t, err)
	assert.Equal(t, "VIP", resp.Notes)
	assert.Equal(t, "old@example.com", resp.Email)
	assert.Equal(t, "Cliente", resp.Name)
}

func TestClientService_Delete_ReferencedClient(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := NewClientService(repo)

	repo.On("FindByID", ctx, int64(3)).Return(ownedClient(3, "u1"), nil)
	repo.On("Delete", ctx, int64(3)).Return(shared.NewDomainError(shared.CodeInvalidState, "Cliente possui processos vinculados"))

	err := svc.Delete(ctx, "u1", 3)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}
