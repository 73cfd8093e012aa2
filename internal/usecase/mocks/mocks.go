package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// MockJournalRepository is a mock implementation of JournalRepository.
// The default behavior stores entries in memory; tests override the
// Func fields to inject failures.
type MockJournalRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.JournalEntry

	CreateEntryFunc    func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error
	CreateLinesFunc    func(ctx context.Context, tx usecase.Transaction, lines []domain.JournalEntryLine) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.JournalEntry, error)
	GetByReferenceFunc func(ctx context.Context, companyID string, refType domain.ReferenceType, refID string) (*domain.JournalEntry, error)
	ListByCompanyFunc  func(ctx context.Context, companyID string, limit, offset int) ([]*domain.JournalEntry, error)
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{
		entries: make(map[string]*domain.JournalEntry),
	}
}

func (m *MockJournalRepository) CreateEntry(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if m.CreateEntryFunc != nil {
		return m.CreateEntryFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockJournalRepository) CreateLines(ctx context.Context, tx usecase.Transaction, lines []domain.JournalEntryLine) error {
	if m.CreateLinesFunc != nil {
		return m.CreateLinesFunc(ctx, tx, lines)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(lines) > 0 {
		if entry, ok := m.entries[lines[0].JournalEntryID]; ok {
			entry.Lines = append(entry.Lines, lines...)
		}
	}
	return nil
}

func (m *MockJournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if entry, ok := m.entries[id]; ok {
		return entry, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockJournalRepository) GetByReference(ctx context.Context, companyID string, refType domain.ReferenceType, refID string) (*domain.JournalEntry, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, companyID, refType, refID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, entry := range m.entries {
		if entry.CompanyID == companyID && entry.ReferenceType == refType && entry.ReferenceID == refID {
			return entry, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockJournalRepository) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*domain.JournalEntry, error) {
	if m.ListByCompanyFunc != nil {
		return m.ListByCompanyFunc(ctx, companyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.JournalEntry
	for _, entry := range m.entries {
		if entry.CompanyID == companyID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// Stored returns the entry by ID, for assertions.
func (m *MockJournalRepository) Stored(id string) *domain.JournalEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[id]
}

// Count returns the number of stored entries.
func (m *MockJournalRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// MockSequenceRepository is a mock implementation of SequenceRepository.
// The default behavior counts up per (company, month).
type MockSequenceRepository struct {
	mu     sync.Mutex
	values map[string]int64

	NextValueFunc func(ctx context.Context, tx usecase.Transaction, companyID, monthPrefix string) (int64, error)
}

func NewMockSequenceRepository() *MockSequenceRepository {
	return &MockSequenceRepository{
		values: make(map[string]int64),
	}
}

func (m *MockSequenceRepository) NextValue(ctx context.Context, tx usecase.Transaction, companyID, monthPrefix string) (int64, error) {
	if m.NextValueFunc != nil {
		return m.NextValueFunc(ctx, tx, companyID, monthPrefix)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := companyID + "/" + monthPrefix
	m.values[key]++
	return m.values[key], nil
}

// MockChartRepository is a mock implementation of ChartRepository.
type MockChartRepository struct {
	mu       sync.RWMutex
	accounts map[string]map[domain.AccountRole]string

	GetMappingFunc    func(ctx context.Context, companyID string) (*domain.ChartMapping, error)
	UpsertAccountFunc func(ctx context.Context, companyID string, role domain.AccountRole, accountID string) error

	GetMappingCalls int
}

func NewMockChartRepository() *MockChartRepository {
	return &MockChartRepository{
		accounts: make(map[string]map[domain.AccountRole]string),
	}
}

func (m *MockChartRepository) GetMapping(ctx context.Context, companyID string) (*domain.ChartMapping, error) {
	m.mu.Lock()
	m.GetMappingCalls++
	m.mu.Unlock()

	if m.GetMappingFunc != nil {
		return m.GetMappingFunc(ctx, companyID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make(map[domain.AccountRole]string, len(m.accounts[companyID]))
	for role, account := range m.accounts[companyID] {
		accounts[role] = account
	}
	return &domain.ChartMapping{CompanyID: companyID, Accounts: accounts}, nil
}

func (m *MockChartRepository) UpsertAccount(ctx context.Context, companyID string, role domain.AccountRole, accountID string) error {
	if m.UpsertAccountFunc != nil {
		return m.UpsertAccountFunc(ctx, companyID, role, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.accounts[companyID] == nil {
		m.accounts[companyID] = make(map[domain.AccountRole]string)
	}
	m.accounts[companyID][role] = accountID
	return nil
}

// MockIdempotencyRepository is a mock implementation of
// IdempotencyRepository backed by a map.
type MockIdempotencyRepository struct {
	mu      sync.Mutex
	records map[string]*domain.IdempotencyRecord

	ClaimFunc         func(ctx context.Context, key string, expiresAt time.Time) (bool, *domain.IdempotencyRecord, error)
	GetFunc           func(ctx context.Context, key string) (*domain.IdempotencyRecord, error)
	CompleteFunc      func(ctx context.Context, key string, responseBody []byte, statusCode int) error
	ReleaseFunc       func(ctx context.Context, key string) error
	DeleteExpiredFunc func(ctx context.Context, before time.Time) (int64, error)
}

func NewMockIdempotencyRepository() *MockIdempotencyRepository {
	return &MockIdempotencyRepository{
		records: make(map[string]*domain.IdempotencyRecord),
	}
}

func (m *MockIdempotencyRepository) Claim(ctx context.Context, key string, expiresAt time.Time) (bool, *domain.IdempotencyRecord, error) {
	if m.ClaimFunc != nil {
		return m.ClaimFunc(ctx, key, expiresAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.records[key]; ok {
		return false, existing, nil
	}
	m.records[key] = &domain.IdempotencyRecord{
		Key:       key,
		Status:    domain.IdempotencyPending,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return true, nil, nil
}

func (m *MockIdempotencyRepository) Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if record, ok := m.records[key]; ok {
		return record, nil
	}
	return nil, domain.ErrIdempotencyKeyNotFound
}

func (m *MockIdempotencyRepository) Complete(ctx context.Context, key string, responseBody []byte, statusCode int) error {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, key, responseBody, statusCode)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if record, ok := m.records[key]; ok {
		record.Status = domain.IdempotencyCompleted
		record.ResponseBody = responseBody
		record.StatusCode = statusCode
	}
	return nil
}

func (m *MockIdempotencyRepository) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *MockIdempotencyRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, before)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for key, record := range m.records {
		if record.ExpiresAt.Before(before) {
			delete(m.records, key)
			deleted++
		}
	}
	return deleted, nil
}

// Record returns the stored record for assertions.
func (m *MockIdempotencyRepository) Record(key string) *domain.IdempotencyRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[key]
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.Mutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	return nil
}

// Events returns the created events for assertions.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.OutboxEvent(nil), m.events...)
}

// MockTransaction is a mock transaction recording its outcome.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu           sync.Mutex
	Transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockIDGenerator generates deterministic sequential IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int
	prefix  string
}

func NewMockIDGenerator(prefix string) *MockIDGenerator {
	return &MockIDGenerator{prefix: prefix}
}

func (m *MockIDGenerator) Generate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return m.prefix + "-" + itoa(m.counter)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// NopRetrier executes the operation once without retrying.
type NopRetrier struct{}

func (m *NopRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}
