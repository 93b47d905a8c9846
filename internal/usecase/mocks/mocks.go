package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/domain"
)

// MockBalanceRepository is an in-memory mock of BalanceRepository.
// The default behavior applies deltas to an internal map, so tests can make
// end-to-end assertions about net balance effects.
type MockBalanceRepository struct {
	mu       sync.RWMutex
	balances map[domain.Kind]decimal.Decimal
	updated  map[domain.Kind]time.Time

	GetFunc        func(ctx context.Context, kind domain.Kind) (decimal.Decimal, error)
	ApplyDeltaFunc func(ctx context.Context, kind domain.Kind, delta decimal.Decimal) error
	ListFunc       func(ctx context.Context) ([]*domain.Balance, error)
}

func NewMockBalanceRepository() *MockBalanceRepository {
	return &MockBalanceRepository{
		balances: make(map[domain.Kind]decimal.Decimal),
		updated:  make(map[domain.Kind]time.Time),
	}
}

func (m *MockBalanceRepository) Get(ctx context.Context, kind domain.Kind) (decimal.Decimal, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, kind)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if amount, ok := m.balances[kind]; ok {
		return amount, nil
	}
	return decimal.Zero, nil
}

func (m *MockBalanceRepository) ApplyDelta(ctx context.Context, kind domain.Kind, delta decimal.Decimal) error {
	if m.ApplyDeltaFunc != nil {
		return m.ApplyDeltaFunc(ctx, kind, delta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[kind] = m.balances[kind].Add(delta)
	m.updated[kind] = time.Now().UTC()
	return nil
}

func (m *MockBalanceRepository) List(ctx context.Context) ([]*domain.Balance, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	balances := make([]*domain.Balance, 0, len(m.balances))
	for kind, amount := range m.balances {
		balances = append(balances, &domain.Balance{Kind: kind, Amount: amount, LastUpdated: m.updated[kind]})
	}
	return balances, nil
}

// Balance returns the currently stored amount for kind.
func (m *MockBalanceRepository) Balance(kind domain.Kind) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[kind]
}

// SetBalance seeds the stored amount for kind.
func (m *MockBalanceRepository) SetBalance(kind domain.Kind, amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[kind] = amount
}

// MockBalanceAdjuster is a mock of BalanceAdjuster that records every
// adjustment and keeps running balances.
type MockBalanceAdjuster struct {
	mu       sync.Mutex
	balances map[domain.Kind]decimal.Decimal
	calls    []Adjustment

	AdjustFunc func(ctx context.Context, kind domain.Kind, delta decimal.Decimal) error
}

// Adjustment is one recorded Adjust call.
type Adjustment struct {
	Kind  domain.Kind
	Delta decimal.Decimal
}

func NewMockBalanceAdjuster() *MockBalanceAdjuster {
	return &MockBalanceAdjuster{
		balances: make(map[domain.Kind]decimal.Decimal),
	}
}

func (m *MockBalanceAdjuster) Adjust(ctx context.Context, kind domain.Kind, delta decimal.Decimal) error {
	if m.AdjustFunc != nil {
		if err := m.AdjustFunc(ctx, kind, delta); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[kind] = m.balances[kind].Add(delta)
	m.calls = append(m.calls, Adjustment{Kind: kind, Delta: delta})
	return nil
}

// Balance returns the net effect applied to kind so far.
func (m *MockBalanceAdjuster) Balance(kind domain.Kind) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[kind]
}

// Calls returns every recorded adjustment in order.
func (m *MockBalanceAdjuster) Calls() []Adjustment {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]Adjustment, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// MockExpenseRepository is an in-memory mock of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]*domain.Expense

	CreateFunc  func(ctx context.Context, expense *domain.Expense) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Expense, error)
	UpdateFunc  func(ctx context.Context, expense *domain.Expense) error
	DeleteFunc  func(ctx context.Context, id string) error
	ListFunc    func(ctx context.Context, filter domain.RecordFilter) ([]*domain.Expense, error)
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		expenses: make(map[string]*domain.Expense),
	}
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[expense.ID] = expense
	return nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if expense, ok := m.expenses[id]; ok {
		return expense, nil
	}
	return nil, domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.expenses[expense.ID]; !ok {
		return domain.ErrExpenseNotFound
	}
	m.expenses[expense.ID] = expense
	return nil
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.expenses[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(m.expenses, id)
	return nil
}

func (m *MockExpenseRepository) List(ctx context.Context, filter domain.RecordFilter) ([]*domain.Expense, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var expenses []*domain.Expense
	for _, expense := range m.expenses {
		if filter.Company != "" && expense.Company != filter.Company {
			continue
		}
		if (filter.From != nil || filter.To != nil) && !expense.IsPaid() {
			continue
		}
		if filter.From != nil && expense.Payment.PaidAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && expense.Payment.PaidAt.After(*filter.To) {
			continue
		}
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

// MockRevenueRepository is an in-memory mock of RevenueRepository.
type MockRevenueRepository struct {
	mu       sync.RWMutex
	revenues map[string]*domain.Revenue

	CreateFunc  func(ctx context.Context, revenue *domain.Revenue) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Revenue, error)
	UpdateFunc  func(ctx context.Context, revenue *domain.Revenue) error
	DeleteFunc  func(ctx context.Context, id string) error
	ListFunc    func(ctx context.Context, filter domain.RecordFilter) ([]*domain.Revenue, error)
}

func NewMockRevenueRepository() *MockRevenueRepository {
	return &MockRevenueRepository{
		revenues: make(map[string]*domain.Revenue),
	}
}

func (m *MockRevenueRepository) Create(ctx context.Context, revenue *domain.Revenue) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, revenue)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revenues[revenue.ID] = revenue
	return nil
}

func (m *MockRevenueRepository) GetByID(ctx context.Context, id string) (*domain.Revenue, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if revenue, ok := m.revenues[id]; ok {
		return revenue, nil
	}
	return nil, domain.ErrRevenueNotFound
}

func (m *MockRevenueRepository) Update(ctx context.Context, revenue *domain.Revenue) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, revenue)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.revenues[revenue.ID]; !ok {
		return domain.ErrRevenueNotFound
	}
	m.revenues[revenue.ID] = revenue
	return nil
}

func (m *MockRevenueRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.revenues[id]; !ok {
		return domain.ErrRevenueNotFound
	}
	delete(m.revenues, id)
	return nil
}

func (m *MockRevenueRepository) List(ctx context.Context, filter domain.RecordFilter) ([]*domain.Revenue, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var revenues []*domain.Revenue
	for _, revenue := range m.revenues {
		if filter.Company != "" && revenue.Company != filter.Company {
			continue
		}
		if (filter.From != nil || filter.To != nil) && revenue.ReceivedAt == nil {
			continue
		}
		if filter.From != nil && revenue.ReceivedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && revenue.ReceivedAt.After(*filter.To) {
			continue
		}
		revenues = append(revenues, revenue)
	}
	return revenues, nil
}

// MockIDGenerator is a mock of IDGenerator producing sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%d", m.next)
}
