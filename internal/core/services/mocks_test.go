package services_test

import (
	"context"
	"time"

	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID, ownerID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, ownerID string, filter domain.EntryFilter, limit, offset int) ([]domain.Entry, int64, error) {
	args := m.Called(ctx, ownerID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntryRepository) FindAllEntries(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.Entry, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindEntriesByDate(ctx context.Context, ownerID string, date time.Time) ([]domain.Entry, error) {
	args := m.Called(ctx, ownerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) UpdateEntry(ctx context.Context, entryID, ownerID string, patch domain.EntryPatch, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, ownerID, patch, updatedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entryID, ownerID string) error {
	args := m.Called(ctx, entryID, ownerID)
	return args.Error(0)
}

// --- Mock RecurringRepository ---
type MockRecurringRepository struct {
	mock.Mock
}

func (m *MockRecurringRepository) SaveDefinition(ctx context.Context, def domain.RecurringDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

func (m *MockRecurringRepository) FindDefinitionByID(ctx context.Context, recurringID, ownerID string) (*domain.RecurringDefinition, error) {
	args := m.Called(ctx, recurringID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringDefinition), args.Error(1)
}

func (m *MockRecurringRepository) ListDefinitions(ctx context.Context, ownerID string) ([]domain.RecurringDefinition, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringDefinition), args.Error(1)
}

func (m *MockRecurringRepository) FindActiveDefinitions(ctx context.Context, ownerID string) ([]domain.RecurringDefinition, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringDefinition), args.Error(1)
}

func (m *MockRecurringRepository) UpdateDefinition(ctx context.Context, recurringID, ownerID string, patch domain.RecurringPatch, updatedAt time.Time) error {
	args := m.Called(ctx, recurringID, ownerID, patch, updatedAt)
	return args.Error(0)
}

func (m *MockRecurringRepository) DeleteDefinition(ctx context.Context, recurringID, ownerID string) error {
	args := m.Called(ctx, recurringID, ownerID)
	return args.Error(0)
}

// --- Mock SummaryRepository ---
type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) GetActionTotals(ctx context.Context, ownerID string, from, to *time.Time) ([]domain.ActionTotal, error) {
	args := m.Called(ctx, ownerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActionTotal), args.Error(1)
}

func (m *MockSummaryRepository) GetMonthlyActionTotals(ctx context.Context, ownerID string, since time.Time) ([]domain.ActionMonthTotal, error) {
	args := m.Called(ctx, ownerID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActionMonthTotal), args.Error(1)
}

func (m *MockSummaryRepository) GetCategoryTotals(ctx context.Context, ownerID string, action domain.Action, from, to *time.Time, limit int) ([]domain.CategoryTotal, bool, error) {
	args := m.Called(ctx, ownerID, action, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Bool(1), args.Error(2)
}

func (m *MockSummaryRepository) GetInvestmentTotals(ctx context.Context, ownerID string, from, to *time.Time, limit int) ([]domain.CategoryTotal, bool, error) {
	args := m.Called(ctx, ownerID, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Bool(1), args.Error(2)
}

func (m *MockSummaryRepository) GetFilteredMonthlyTotals(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.ActionMonthTotal, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActionMonthTotal), args.Error(1)
}

func (m *MockSummaryRepository) GetFilteredCategoryTotals(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.CategoryActionTotal, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryActionTotal), args.Error(1)
}

func (m *MockSummaryRepository) GetFilteredActionSums(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.ActionTotal, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActionTotal), args.Error(1)
}
