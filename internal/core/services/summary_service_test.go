package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finly-app/finly_backend/internal/core/domain"
	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
	"github.com/finly-app/finly_backend/internal/core/services"
	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/finly-app/finly_backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type SummaryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSummaryRepository
	service  portssvc.SummarySvcFacade
	ownerID  string
}

func (suite *SummaryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSummaryRepository)
	suite.service = services.NewSummaryService(suite.mockRepo)
	suite.ownerID = uuid.NewString()
}

// expectEmptyBreakdowns stubs the breakdown and trend queries with
// empty results so tests can focus on the totals.
func (suite *SummaryServiceTestSuite) expectEmptyBreakdowns(ctx context.Context) {
	suite.mockRepo.On("GetMonthlyActionTotals", ctx, suite.ownerID, mock.AnythingOfType("time.Time")).
		Return([]domain.ActionMonthTotal{}, nil).Once()
	suite.mockRepo.On("GetCategoryTotals", ctx, suite.ownerID, domain.Expense, mock.Anything, mock.Anything, 5).
		Return([]domain.CategoryTotal{}, false, nil).Once()
	suite.mockRepo.On("GetCategoryTotals", ctx, suite.ownerID, domain.Income, mock.Anything, mock.Anything, 5).
		Return([]domain.CategoryTotal{}, false, nil).Once()
	suite.mockRepo.On("GetInvestmentTotals", ctx, suite.ownerID, mock.Anything, mock.Anything, 5).
		Return([]domain.CategoryTotal{}, false, nil).Once()
}

// --- Test Cases ---

func (suite *SummaryServiceTestSuite) TestGetSummary_Totals() {
	ctx := context.Background()

	suite.mockRepo.On("GetActionTotals", ctx, suite.ownerID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.ActionTotal{
			{Action: domain.Income, Total: decimal.NewFromInt(1000), Count: 2},
			{Action: domain.Expense, Total: decimal.NewFromInt(400), Count: 5},
			{Action: domain.Investment, Total: decimal.NewFromInt(150), Count: 1},
		}, nil).Once()
	suite.expectEmptyBreakdowns(ctx)

	summary, err := suite.service.GetSummary(ctx, suite.ownerID, nil)

	suite.Require().NoError(err)
	suite.True(summary.TotalIncome.Equal(decimal.NewFromInt(1000)))
	suite.Equal(int64(2), summary.IncomeCount)
	suite.True(summary.TotalExpense.Equal(decimal.NewFromInt(400)))
	suite.True(summary.TotalInvestment.Equal(decimal.NewFromInt(150)))
	suite.True(summary.Balance.Equal(decimal.NewFromInt(600)))
	suite.InDelta(60.0, summary.SavingsRate, 0.0001)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestGetSummary_NoIncomeMeansZeroSavingsRate() {
	ctx := context.Background()

	suite.mockRepo.On("GetActionTotals", ctx, suite.ownerID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.ActionTotal{
			{Action: domain.Expense, Total: decimal.NewFromInt(400), Count: 3},
		}, nil).Once()
	suite.expectEmptyBreakdowns(ctx)

	summary, err := suite.service.GetSummary(ctx, suite.ownerID, nil)

	suite.Require().NoError(err)
	suite.Zero(summary.SavingsRate)
	suite.True(summary.Balance.Equal(decimal.NewFromInt(-400)))
}

func (suite *SummaryServiceTestSuite) TestGetSummary_EmptyScopeYieldsZerosNotNulls() {
	ctx := context.Background()

	suite.mockRepo.On("GetActionTotals", ctx, suite.ownerID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.ActionTotal{}, nil).Once()
	suite.expectEmptyBreakdowns(ctx)

	summary, err := suite.service.GetSummary(ctx, suite.ownerID, nil)

	suite.Require().NoError(err)
	suite.True(summary.TotalIncome.IsZero())
	suite.True(summary.Balance.IsZero())
	suite.Zero(summary.SavingsRate)
	suite.NotNil(summary.MonthlyTrends)
	suite.Len(summary.MonthlyTrends, 6)
	suite.NotNil(summary.ExpenseBreakdown.Categories)
	suite.Empty(summary.ExpenseBreakdown.Categories)
	suite.NotNil(summary.InvestmentPerformance)
	suite.Empty(summary.InvestmentPerformance)
}

func (suite *SummaryServiceTestSuite) TestGetSummary_MonthFilterIsHalfOpenInterval() {
	ctx := context.Background()
	month := types.NewMonth(2024, time.March)

	suite.mockRepo.On("GetActionTotals", ctx, suite.ownerID, mock.MatchedBy(func(from *time.Time) bool {
		return from != nil && from.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	}), mock.MatchedBy(func(to *time.Time) bool {
		return to != nil && to.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	})).Return([]domain.ActionTotal{}, nil).Once()
	suite.expectEmptyBreakdowns(ctx)

	_, err := suite.service.GetSummary(ctx, suite.ownerID, &month)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestGetSummary_TrendsCoverTrailingSixMonths() {
	ctx := context.Background()
	current := types.MonthOf(time.Now())
	oldest := current.AddDate(0, -5)

	suite.mockRepo.On("GetActionTotals", ctx, suite.ownerID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.ActionTotal{}, nil).Once()
	suite.mockRepo.On("GetMonthlyActionTotals", ctx, suite.ownerID, oldest.First()).
		Return([]domain.ActionMonthTotal{
			{Month: current.First(), Action: domain.Income, Total: decimal.NewFromInt(900)},
			{Month: current.First(), Action: domain.Expense, Total: decimal.NewFromInt(300)},
		}, nil).Once()
	suite.mockRepo.On("GetCategoryTotals", ctx, suite.ownerID, domain.Expense, mock.Anything, mock.Anything, 5).
		Return([]domain.CategoryTotal{}, false, nil).Once()
	suite.mockRepo.On("GetCategoryTotals", ctx, suite.ownerID, domain.Income, mock.Anything, mock.Anything, 5).
		Return([]domain.CategoryTotal{}, false, nil).Once()
	suite.mockRepo.On("GetInvestmentTotals", ctx, suite.ownerID, mock.Anything, mock.Anything, 5).
		Return([]domain.CategoryTotal{}, false, nil).Once()

	summary, err := suite.service.GetSummary(ctx, suite.ownerID, nil)

	suite.Require().NoError(err)
	suite.Require().Len(summary.MonthlyTrends, 6)

	// Oldest first, months with no data stay at zero.
	suite.Equal(oldest.String(), summary.MonthlyTrends[0].Month)
	suite.Equal(current.String(), summary.MonthlyTrends[5].Month)
	suite.True(summary.MonthlyTrends[0].Income.IsZero())
	suite.True(summary.MonthlyTrends[5].Income.Equal(decimal.NewFromInt(900)))
	suite.True(summary.MonthlyTrends[5].Expenses.Equal(decimal.NewFromInt(300)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestGetSummary_BreakdownAveragesOverTwelveMonths() {
	ctx := context.Background()

	suite.mockRepo.On("GetActionTotals", ctx, suite.ownerID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.ActionTotal{
			{Action: domain.Expense, Total: decimal.NewFromInt(1200), Count: 12},
		}, nil).Once()
	suite.mockRepo.On("GetMonthlyActionTotals", ctx, suite.ownerID, mock.AnythingOfType("time.Time")).
		Return([]domain.ActionMonthTotal{}, nil).Once()
	suite.mockRepo.On("GetCategoryTotals", ctx, suite.ownerID, domain.Expense, mock.Anything, mock.Anything, 5).
		Return([]domain.CategoryTotal{
			{Category: "Vivienda", Total: decimal.NewFromInt(800)},
			{Category: "Comida", Total: decimal.NewFromInt(400)},
		}, true, nil).Once()
	suite.mockRepo.On("GetCategoryTotals", ctx, suite.ownerID, domain.Income, mock.Anything, mock.Anything, 5).
		Return([]domain.CategoryTotal{}, false, nil).Once()
	suite.mockRepo.On("GetInvestmentTotals", ctx, suite.ownerID, mock.Anything, mock.Anything, 5).
		Return([]domain.CategoryTotal{}, false, nil).Once()

	summary, err := suite.service.GetSummary(ctx, suite.ownerID, nil)

	suite.Require().NoError(err)
	suite.True(summary.ExpenseBreakdown.Total.Equal(decimal.NewFromInt(1200)))
	suite.True(summary.ExpenseBreakdown.AverageMonthly.Equal(decimal.NewFromInt(100)))
	suite.True(summary.ExpenseBreakdown.HasMore)
	suite.Require().Len(summary.ExpenseBreakdown.Categories, 2)
	suite.Equal("Vivienda", summary.ExpenseBreakdown.Categories[0].Category)
}

func (suite *SummaryServiceTestSuite) TestGetAnalytics_MapsSeries() {
	ctx := context.Background()
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	req := dto.ListEntriesRequest{Action: "expense"}
	filter := domain.EntryFilter{Action: domain.Expense}

	suite.mockRepo.On("GetFilteredMonthlyTotals", ctx, suite.ownerID, filter).
		Return([]domain.ActionMonthTotal{
			{Month: march, Action: domain.Expense, Total: decimal.NewFromInt(300)},
		}, nil).Once()
	suite.mockRepo.On("GetFilteredCategoryTotals", ctx, suite.ownerID, filter).
		Return([]domain.CategoryActionTotal{
			{Category: "Vivienda", Action: domain.Expense, Total: decimal.NewFromInt(800)},
		}, nil).Once()
	suite.mockRepo.On("GetFilteredActionSums", ctx, suite.ownerID, filter).
		Return([]domain.ActionTotal{
			{Action: domain.Expense, Total: decimal.NewFromInt(1100)},
		}, nil).Once()

	resp, err := suite.service.GetAnalytics(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().Len(resp.TemporalData, 1)
	suite.Equal(march, resp.TemporalData[0].Month)
	suite.Require().Len(resp.CategoryData, 1)
	suite.Equal("Vivienda", resp.CategoryData[0].Category)
	suite.True(resp.Sums.Expenses.Equal(decimal.NewFromInt(1100)))
	suite.True(resp.Sums.Income.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestSummaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}
