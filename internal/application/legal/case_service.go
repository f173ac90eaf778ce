package legal

import (
	"context"
	"strconv"

	"github.com/lawai/backend/internal/domain/legal"
	"github.com/lawai/backend/internal/domain/shared"
)

const unknownClientName = "Cliente não especificado"

// CaseService handles case-related business operations
type CaseService struct {
	caseRepo   legal.CaseRepository
	clientRepo legal.ClientRepository
}

// NewCaseService creates a new CaseService
func NewCaseService(caseRepo legal.CaseRepository, clientRepo legal.ClientRepository) *CaseService {
	return &CaseService{
		caseRepo:   caseRepo,
		clientRepo: clientRepo,
	}
}

// Create opens a case for one of the caller's clients
func (s *CaseService) Create(ctx context.Context, ownerID string, req CreateCaseRequest) (*CaseResponse, error) {
	if _, err := loadOwned(ctx, s.clientRepo.FindByID, req.ClientID, ownerID, msgClientNotFound); err != nil {
		return nil, err
	}

	c, err := legal.NewCase(ownerID, req.Title, req.ClientID)
	if err != nil {
		return nil, err
	}
	if err := c.SetValue(req.Value); err != nil {
		return nil, err
	}
	c.SetStatus(req.Status)
	c.Number = req.Number
	c.Type = req.Type
	c.Court = req.Court
	c.Description = req.Description

	if err := s.caseRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	response := ToCaseResponse(c)
	return &response, nil
}

// List returns the owner's cases, optionally restricted to one client
func (s *CaseService) List(ctx context.Context, ownerID string, query CaseListQuery) ([]CaseResponse, error) {
	filter := shared.Filter{Offset: query.Skip, Limit: query.Limit}.Normalize()
	if query.ClientID > 0 {
		filter = filter.With("client_id", query.ClientID)
	}

	cases, err := s.caseRepo.FindAllByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	return ToCaseResponses(cases), nil
}

// GetByID returns one of the caller's cases
func (s *CaseService) GetByID(ctx context.Context, ownerID string, id int64) (*CaseResponse, error) {
	c, err := loadOwned(ctx, s.caseRepo.FindByID, id, ownerID, msgCaseNotFound)
	if err != nil {
		return nil, err
	}
	response := ToCaseResponse(c)
	return &response, nil
}

// Update applies a partial update. Moving the case to another client requires
// that client to exist and belong to the caller.
func (s *CaseService) Update(ctx context.Context, ownerID string, id int64, req UpdateCaseRequest) (*CaseResponse, error) {
	c, err := loadOwned(ctx, s.caseRepo.FindByID, id, ownerID, msgCaseNotFound)
	if err != nil {
		return nil, err
	}

	patch := req.patch()
	if patch.ChangesClient(c.ClientID) {
		if err := s.authorizeClient(ctx, *patch.ClientID, ownerID); err != nil {
			return nil, err
		}
	}

	if err := c.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.caseRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	response := ToCaseResponse(c)
	return &response, nil
}

// Delete removes one of the caller's cases. Linked deadlines are kept and
// lose their case reference.
func (s *CaseService) Delete(ctx context.Context, ownerID string, id int64) error {
	if _, err := loadOwned(ctx, s.caseRepo.FindByID, id, ownerID, msgCaseNotFound); err != nil {
		return err
	}
	return s.caseRepo.Delete(ctx, id)
}

// Options lists the caller's cases as dropdown entries
func (s *CaseService) Options(ctx context.Context, ownerID string) ([]CaseOption, error) {
	cases, err := s.caseRepo.FindAllByOwner(ctx, ownerID, shared.Filter{})
	if err != nil {
		return nil, err
	}

	clientIDs := make([]int64, 0, len(cases))
	seen := make(map[int64]struct{}, len(cases))
	for _, c := range cases {
		if _, ok := seen[c.ClientID]; ok {
			continue
		}
		seen[c.ClientID] = struct{}{}
		clientIDs = append(clientIDs, c.ClientID)
	}

	names := make(map[int64]string, len(clientIDs))
	if len(clientIDs) > 0 {
		clients, err := s.clientRepo.FindByIDs(ctx, clientIDs)
		if err != nil {
			return nil, err
		}
		for _, cl := range clients {
			names[cl.ID] = cl.Name
		}
	}

	options := make([]CaseOption, 0, len(cases))
	for _, c := range cases {
		clientName := names[c.ClientID]
		if clientName == "" {
			clientName = unknownClientName
		}
		options = append(options, CaseOption{
			ID:         c.ID,
			Label:      c.Label(),
			Value:      strconv.FormatInt(c.ID, 10),
			ClientName: clientName,
			Status:     c.Status,
		})
	}
	return options, nil
}

// Stats counts the caller's cases, broken down by the known statuses
func (s *CaseService) Stats(ctx context.Context, ownerID string) (*CaseStats, error) {
	total, err := s.caseRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	counts, err := s.caseRepo.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, len(legal.KnownCaseStatuses))
	for _, status := range legal.KnownCaseStatuses {
		byStatus[status] = counts[status]
	}
	return &CaseStats{Total: total, ByStatus: byStatus}, nil
}

// authorizeClient checks a reassignment target. A missing client is reported
// as a permission failure so foreign ids stay indistinguishable from missing ones.
func (s *CaseService) authorizeClient(ctx context.Context, clientID int64, ownerID string) error {
	_, err := loadOwned(ctx, s.clientRepo.FindByID, clientID, ownerID, msgClientNotFound)
	if shared.IsNotFound(err) {
		return shared.NewPermissionError("Sem permissão para associar este cliente")
	}
	return err
}
