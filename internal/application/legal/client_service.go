package legal

import (
	"context"

	"github.com/lawai/backend/internal/domain/legal"
	"github.com/lawai/backend/internal/domain/shared"
)

// ClientService handles client-related business operations
type ClientService struct {
	clientRepo legal.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo legal.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create registers a client owned by ownerID
func (s *ClientService) Create(ctx context.Context, ownerID string, req CreateClientRequest) (*ClientResponse, error) {
	client, err := legal.NewClient(ownerID, req.Name)
	if err != nil {
		return nil, err
	}
	client.SetContact(req.Email, req.Phone, req.Address)
	client.Document = req.Document
	client.Notes = req.Notes

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// List returns the owner's clients
func (s *ClientService) List(ctx context.Context, ownerID string, query ClientListQuery) ([]ClientResponse, error) {
	filter := shared.Filter{
		Offset: query.Skip,
		Limit:  query.Limit,
		Search: query.Search,
	}.Normalize()

	clients, err := s.clientRepo.FindAllByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	return ToClientResponses(clients), nil
}

// GetByID returns one of the caller's clients
func (s *ClientService) GetByID(ctx context.Context, ownerID string, id int64) (*ClientResponse, error) {
	client, err := loadOwned(ctx, s.clientRepo.FindByID, id, ownerID, msgClientNotFound)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Update applies a partial update to one of the caller's clients
func (s *ClientService) Update(ctx context.Context, ownerID string, id int64, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := loadOwned(ctx, s.clientRepo.FindByID, id, ownerID, msgClientNotFound)
	if err != nil {
		return nil, err
	}
	if err := client.Apply(req.patch()); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes one of the caller's clients. A client that still has cases
// cannot be removed.
func (s *ClientService) Delete(ctx context.Context, ownerID string, id int64) error {
	if _, err := loadOwned(ctx, s.clientRepo.FindByID, id, ownerID, msgClientNotFound); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}
