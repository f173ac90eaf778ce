package legal

import (
	"context"
	"time"

	"github.com/lawai/backend/internal/domain/legal"
	"github.com/lawai/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// ============================================================================
// Mocks
// ============================================================================

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, c *legal.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, c *legal.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id int64) (*legal.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*legal.Client), args.Error(1)
}

func (m *MockClientRepository) FindByIDs(ctx context.Context, ids []int64) ([]*legal.Client, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*legal.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]*legal.Client, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*legal.Client), args.Error(1)
}

var _ legal.ClientRepository = (*MockClientRepository)(nil)

// MockCaseRepository is a mock implementation of CaseRepository
type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) Create(ctx context.Context, c *legal.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) Update(ctx context.Context, c *legal.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCaseRepository) FindByID(ctx context.Context, id int64) (*legal.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*legal.Case), args.Error(1)
}

func (m *MockCaseRepository) FindByIDs(ctx context.Context, ids []int64) ([]*legal.Case, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*legal.Case), args.Error(1)
}

func (m *MockCaseRepository) FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]*legal.Case, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*legal.Case), args.Error(1)
}

func (m *MockCaseRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCaseRepository) CountByStatus(ctx context.Context, ownerID string) (map[string]int64, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

var _ legal.CaseRepository = (*MockCaseRepository)(nil)

// MockDeadlineRepository is a mock implementation of DeadlineRepository
type MockDeadlineRepository struct {
	mock.Mock
}

func (m *MockDeadlineRepository) Create(ctx context.Context, d *legal.Deadline) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeadlineRepository) Update(ctx context.Context, d *legal.Deadline) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeadlineRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeadlineRepository) FindByID(ctx context.Context, id int64) (*legal.Deadline, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*legal.Deadline), args.Error(1)
}

func (m *MockDeadlineRepository) FindAllByOwner(ctx context.Context, ownerID string, filter legal.DeadlineFilter) ([]*legal.Deadline, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*legal.Deadline), args.Error(1)
}

func (m *MockDeadlineRepository) CountByOwner(ctx context.Context, ownerID string, filter legal.DeadlineFilter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

var _ legal.DeadlineRepository = (*MockDeadlineRepository)(nil)

// MockDocumentRepository is a mock implementation of DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, d *legal.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDocumentRepository) Update(ctx context.Context, d *legal.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id string) (*legal.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*legal.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]*legal.Document, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*legal.Document), args.Error(1)
}

var _ legal.DocumentRepository = (*MockDocumentRepository)(nil)

// MockFileStorage is a mock implementation of FileStorage
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	args := m.Called(ctx, storageKey, data, contentType)
	return args.Error(0)
}

func (m *MockFileStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockFileStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

var _ FileStorage = (*MockFileStorage)(nil)

// MockDocumentRenderer is a mock implementation of DocumentRenderer
type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) RenderDocument(ctx context.Context, doc *legal.Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ DocumentRenderer = (*MockDocumentRenderer)(nil)

// ============================================================================
// Fixtures
// ============================================================================

func ownedClient(id int64, owner string) *legal.Client {
	c, _ := legal.NewClient(owner, "Cliente")
	c.ID = id
	return c
}

func ownedCase(id int64, owner string, clientID int64) *legal.Case {
	c, _ := legal.NewCase(owner, "Processo", clientID)
	c.ID = id
	return c
}

func ownedDeadline(id int64, owner string, due time.Time) *legal.Deadline {
	return &legal.Deadline{
		Timestamps:  shared.NewTimestamps(),
		OwnedEntity: shared.OwnedEntity{UserID: owner},
		ID:          id,
		Title:       "Prazo",
		DueDate:     due,
		Priority:    legal.PriorityMedium,
	}
}
