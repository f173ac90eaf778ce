package legal

import (
	"context"
	"math"

	"github.com/lawai/backend/internal/domain/legal"
	"github.com/lawai/backend/internal/domain/shared"
)

// Window used by ListUpcoming when no positive horizon is given and by the
// "upcoming" statistic.
const defaultUpcomingDays = 7

// DeadlineService handles procedural deadlines
type DeadlineService struct {
	deadlineRepo legal.DeadlineRepository
	caseRepo     legal.CaseRepository
	now          Clock
}

// DeadlineServiceOption configures a DeadlineService
type DeadlineServiceOption func(*DeadlineService)

// WithClock overrides the time source
func WithClock(clock Clock) DeadlineServiceOption {
	return func(s *DeadlineService) {
		s.now = clock
	}
}

// NewDeadlineService creates a new DeadlineService
func NewDeadlineService(deadlineRepo legal.DeadlineRepository, caseRepo legal.CaseRepository, opts ...DeadlineServiceOption) *DeadlineService {
	s := &DeadlineService{
		deadlineRepo: deadlineRepo,
		caseRepo:     caseRepo,
		now:          systemClock,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a pending deadline. The due date must lie in the future and
// a referenced case must belong to the caller.
func (s *DeadlineService) Create(ctx context.Context, ownerID string, req CreateDeadlineRequest) (*DeadlineResponse, error) {
	priority, err := legal.ParsePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	d, err := legal.NewDeadline(ownerID, req.Title, req.DueDate, s.now())
	if err != nil {
		return nil, err
	}
	d.Priority = priority
	d.Description = req.Description

	if req.CaseID != nil {
		c, err := loadOwned(ctx, s.caseRepo.FindByID, *req.CaseID, ownerID, msgCaseNotFound)
		if err != nil {
			return nil, err
		}
		d.CaseID = &c.ID
	}

	if err := s.deadlineRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	response := ToDeadlineResponse(d)
	return &response, nil
}

// List returns the caller's deadlines ordered by due date
func (s *DeadlineService) List(ctx context.Context, ownerID string, query DeadlineListQuery) ([]DeadlineResponse, error) {
	paging := shared.Filter{Offset: query.Skip, Limit: query.Limit}.Normalize()
	filter := legal.DeadlineFilter{Offset: paging.Offset, Limit: paging.Limit}

	if query.CaseID > 0 {
		caseID := query.CaseID
		filter.CaseID = &caseID
	}
	if query.PendingOnly {
		pending := false
		filter.Completed = &pending
	}
	if query.DaysAhead > 0 {
		now := s.now()
		to := now.AddDate(0, 0, query.DaysAhead)
		filter.DueFrom = &now
		filter.DueTo = &to
	}

	deadlines, err := s.deadlineRepo.FindAllByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	return ToDeadlineResponses(deadlines), nil
}

// ListByCase returns the deadlines of one of the caller's cases
func (s *DeadlineService) ListByCase(ctx context.Context, ownerID string, caseID int64) ([]DeadlineResponse, error) {
	if _, err := loadOwned(ctx, s.caseRepo.FindByID, caseID, ownerID, msgCaseNotFound); err != nil {
		return nil, err
	}
	deadlines, err := s.deadlineRepo.FindAllByOwner(ctx, ownerID, legal.DeadlineFilter{CaseID: &caseID})
	if err != nil {
		return nil, err
	}
	return ToDeadlineResponses(deadlines), nil
}

// ListUpcoming returns deadlines due within the next daysAhead days, each
// classified by urgency and carrying a summary of its case.
func (s *DeadlineService) ListUpcoming(ctx context.Context, ownerID string, daysAhead int, includeCompleted bool) ([]UpcomingDeadline, error) {
	if daysAhead <= 0 {
		daysAhead = defaultUpcomingDays
	}
	now := s.now()
	to := now.AddDate(0, 0, daysAhead)
	filter := legal.DeadlineFilter{DueFrom: &now, DueTo: &to}
	if !includeCompleted {
		pending := false
		filter.Completed = &pending
	}

	deadlines, err := s.deadlineRepo.FindAllByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	summaries, err := s.caseSummaries(ctx, deadlines)
	if err != nil {
		return nil, err
	}

	result := make([]UpcomingDeadline, 0, len(deadlines))
	for _, d := range deadlines {
		cls := d.Classify(now)
		item := UpcomingDeadline{
			ID:            d.ID,
			Title:         d.Title,
			Description:   d.Description,
			DueDate:       d.DueDate,
			Priority:      string(d.Priority),
			IsCompleted:   d.IsCompleted,
			RemainingDays: cls.RemainingDays,
			Tier:          cls.Tier,
			Status:        cls.Tier.Label(),
		}
		if d.CaseID != nil {
			if summary, ok := summaries[*d.CaseID]; ok {
				item.Case = &summary
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// caseSummaries loads the cases referenced by deadlines in one query.
// Cases that no longer exist are simply absent from the map.
func (s *DeadlineService) caseSummaries(ctx context.Context, deadlines []*legal.Deadline) (map[int64]legal.CaseSummary, error) {
	ids := make([]int64, 0, len(deadlines))
	seen := make(map[int64]struct{})
	for _, d := range deadlines {
		if d.CaseID == nil {
			continue
		}
		if _, ok := seen[*d.CaseID]; ok {
			continue
		}
		seen[*d.CaseID] = struct{}{}
		ids = append(ids, *d.CaseID)
	}
	summaries := make(map[int64]legal.CaseSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	cases, err := s.caseRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range cases {
		summaries[c.ID] = c.Summary()
	}
	return summaries, nil
}

// GetByID returns one of the caller's deadlines
func (s *DeadlineService) GetByID(ctx context.Context, ownerID string, id int64) (*DeadlineResponse, error) {
	d, err := loadOwned(ctx, s.deadlineRepo.FindByID, id, ownerID, msgDeadlineNotFound)
	if err != nil {
		return nil, err
	}
	response := ToDeadlineResponse(d)
	return &response, nil
}

// Update applies a partial update. Linking the deadline to another case
// requires that case to exist and belong to the caller.
func (s *DeadlineService) Update(ctx context.Context, ownerID string, id int64, req UpdateDeadlineRequest) (*DeadlineResponse, error) {
	d, err := loadOwned(ctx, s.deadlineRepo.FindByID, id, ownerID, msgDeadlineNotFound)
	if err != nil {
		return nil, err
	}

	patch := req.patch()
	if patch.ChangesCase(d.CaseID) {
		_, err := loadOwned(ctx, s.caseRepo.FindByID, *patch.CaseID, ownerID, msgCaseNotFound)
		if shared.IsNotFound(err) {
			return nil, shared.NewPermissionError("Sem permissão para associar este processo")
		}
		if err != nil {
			return nil, err
		}
	}

	if err := d.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.deadlineRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	response := ToDeadlineResponse(d)
	return &response, nil
}

// Complete marks one of the caller's deadlines as done
func (s *DeadlineService) Complete(ctx context.Context, ownerID string, id int64) (*DeadlineResponse, error) {
	d, err := loadOwned(ctx, s.deadlineRepo.FindByID, id, ownerID, msgDeadlineNotFound)
	if err != nil {
		return nil, err
	}
	if !d.IsCompleted {
		d.Complete()
		if err := s.deadlineRepo.Update(ctx, d); err != nil {
			return nil, err
		}
	}
	response := ToDeadlineResponse(d)
	return &response, nil
}

// Delete removes one of the caller's deadlines
func (s *DeadlineService) Delete(ctx context.Context, ownerID string, id int64) error {
	if _, err := loadOwned(ctx, s.deadlineRepo.FindByID, id, ownerID, msgDeadlineNotFound); err != nil {
		return err
	}
	return s.deadlineRepo.Delete(ctx, id)
}

// Statistics summarises the caller's deadlines
func (s *DeadlineService) Statistics(ctx context.Context, ownerID string) (*DeadlineStatisticsResponse, error) {
	now := s.now()
	weekAhead := now.AddDate(0, 0, defaultUpcomingDays)
	pending, completed := false, true

	filters := []legal.DeadlineFilter{
		{},
		{Completed: &completed},
		{Completed: &pending},
		{Completed: &pending, DueBefore: &now},
		{Completed: &pending, DueFrom: &now, DueTo: &weekAhead},
	}
	counts := make([]int64, len(filters))
	for i, f := range filters {
		n, err := s.deadlineRepo.CountByOwner(ctx, ownerID, f)
		if err != nil {
			return nil, err
		}
		counts[i] = n
	}

	stats := legal.DeadlineStatistics{
		Total:     counts[0],
		Completed: counts[1],
		Pending:   counts[2],
		Overdue:   counts[3],
		Upcoming:  counts[4],
	}
	stats.CompletionRate = completionRate(stats.Completed, stats.Total)

	return &DeadlineStatisticsResponse{
		Total:          stats.Total,
		Pending:        stats.Pending,
		Completed:      stats.Completed,
		Overdue:        stats.Overdue,
		Upcoming:       stats.Upcoming,
		CompletionRate: stats.CompletionRate,
	}, nil
}

// completionRate is completed/total as a percentage rounded to two decimals
func completionRate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*100*100) / 100
}
