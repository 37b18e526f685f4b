package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finly-app/finly_backend/internal/core/domain"
	portsrepo "github.com/finly-app/finly_backend/internal/core/ports/repositories"
	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/finly-app/finly_backend/internal/middleware"
	"github.com/finly-app/finly_backend/internal/types"
	"github.com/shopspring/decimal"
)

const (
	// trendMonths is the length of the trailing monthly trend series,
	// current month included.
	trendMonths = 6

	// breakdownLimit is the number of category groups a breakdown keeps.
	breakdownLimit = 5

	// averageMonths is the fixed divisor for the averageMonthly figure,
	// regardless of the actual data span.
	averageMonths = 12
)

// SummaryService computes aggregated financial statistics.
type SummaryService struct {
	summaryRepo portsrepo.SummaryRepositoryFacade
	now         func() time.Time
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(sr portsrepo.SummaryRepositoryFacade) portssvc.SummarySvcFacade {
	return &SummaryService{
		summaryRepo: sr,
		now:         time.Now,
	}
}

// Ensure SummaryService implements the portssvc.SummarySvcFacade interface
var _ portssvc.SummarySvcFacade = (*SummaryService)(nil)

// GetSummary computes the owner's financial summary, optionally
// restricted to one calendar month. The monthly trend series always
// covers the trailing six months relative to now, even when a month
// filter is applied.
func (s *SummaryService) GetSummary(ctx context.Context, ownerID string, month *types.Month) (*dto.SummaryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Month filters translate to the half-open interval [first, next).
	var from, to *time.Time
	if month != nil && !month.IsZero() {
		first := month.First()
		next := month.Next()
		from, to = &first, &next
	}

	actionTotals, err := s.summaryRepo.GetActionTotals(ctx, ownerID, from, to)
	if err != nil {
		logger.Error("Failed to get action totals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}

	summary := &dto.SummaryResponse{
		MonthlyTrends:         []dto.MonthlyTrendResponse{},
		InvestmentPerformance: []dto.CategoryResponse{},
		ExpenseBreakdown:      dto.BreakdownResponse{Categories: []dto.CategoryResponse{}},
		IncomeBreakdown:       dto.BreakdownResponse{Categories: []dto.CategoryResponse{}},
	}
	for _, t := range actionTotals {
		switch t.Action {
		case domain.Income:
			summary.TotalIncome = t.Total
			summary.IncomeCount = t.Count
		case domain.Expense:
			summary.TotalExpense = t.Total
			summary.ExpenseCount = t.Count
		case domain.Investment:
			summary.TotalInvestment = t.Total
			summary.InvestmentCount = t.Count
		}
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	summary.SavingsRate = savingsRate(summary.TotalIncome, summary.TotalExpense)

	trends, err := s.monthlyTrends(ctx, ownerID)
	if err != nil {
		logger.Error("Failed to get monthly trends", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}
	summary.MonthlyTrends = trends

	expenseBreakdown, err := s.breakdown(ctx, ownerID, domain.Expense, from, to, summary.TotalExpense)
	if err != nil {
		logger.Error("Failed to get expense breakdown", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}
	summary.ExpenseBreakdown = expenseBreakdown

	incomeBreakdown, err := s.breakdown(ctx, ownerID, domain.Income, from, to, summary.TotalIncome)
	if err != nil {
		logger.Error("Failed to get income breakdown", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}
	summary.IncomeBreakdown = incomeBreakdown

	investments, _, err := s.summaryRepo.GetInvestmentTotals(ctx, ownerID, from, to, breakdownLimit)
	if err != nil {
		logger.Error("Failed to get investment totals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}
	for _, inv := range investments {
		summary.InvestmentPerformance = append(summary.InvestmentPerformance, dto.CategoryResponse{
			Category: inv.Category,
			Total:    inv.Total,
		})
	}

	return summary, nil
}

// GetAnalytics computes the filtered temporal and category series plus
// per-action sums over an arbitrary entry filter.
func (s *SummaryService) GetAnalytics(ctx context.Context, ownerID string, req dto.ListEntriesRequest) (*dto.AnalyticsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter, err := buildEntryFilter(req)
	if err != nil {
		logger.Warn("Invalid analytics filter", slog.String("error", err.Error()))
		return nil, err
	}

	monthly, err := s.summaryRepo.GetFilteredMonthlyTotals(ctx, ownerID, filter)
	if err != nil {
		logger.Error("Failed to get filtered monthly totals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	categories, err := s.summaryRepo.GetFilteredCategoryTotals(ctx, ownerID, filter)
	if err != nil {
		logger.Error("Failed to get filtered category totals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	sums, err := s.summaryRepo.GetFilteredActionSums(ctx, ownerID, filter)
	if err != nil {
		logger.Error("Failed to get filtered action sums", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	resp := &dto.AnalyticsResponse{
		TemporalData: make([]dto.TemporalPointResponse, 0, len(monthly)),
		CategoryData: make([]dto.CategoryPointResponse, 0, len(categories)),
	}
	for _, row := range monthly {
		resp.TemporalData = append(resp.TemporalData, dto.TemporalPointResponse{
			Month:  row.Month,
			Action: row.Action,
			Total:  row.Total,
		})
	}
	for _, row := range categories {
		resp.CategoryData = append(resp.CategoryData, dto.CategoryPointResponse{
			Category: row.Category,
			Action:   row.Action,
			Total:    row.Total,
		})
	}
	for _, row := range sums {
		switch row.Action {
		case domain.Income:
			resp.Sums.Income = row.Total
		case domain.Expense:
			resp.Sums.Expenses = row.Total
		case domain.Investment:
			resp.Sums.Investments = row.Total
		}
	}

	return resp, nil
}

// monthlyTrends builds the trailing six month trend series, oldest
// month first. Months with no entries stay at zero so charts always
// get a fixed-length, gap-free series.
func (s *SummaryService) monthlyTrends(ctx context.Context, ownerID string) ([]dto.MonthlyTrendResponse, error) {
	start := types.MonthOf(s.now()).AddDate(0, -(trendMonths - 1))

	rows, err := s.summaryRepo.GetMonthlyActionTotals(ctx, ownerID, start.First())
	if err != nil {
		return nil, err
	}

	trends := make([]dto.MonthlyTrendResponse, trendMonths)
	index := make(map[string]int, trendMonths)
	for i := range trends {
		m := start.AddDate(0, i)
		trends[i] = dto.MonthlyTrendResponse{Month: m.String()}
		index[m.String()] = i
	}

	for _, row := range rows {
		i, ok := index[types.MonthOf(row.Month).String()]
		if !ok {
			continue
		}
		switch row.Action {
		case domain.Income:
			trends[i].Income = row.Total
		case domain.Expense:
			trends[i].Expenses = row.Total
		case domain.Investment:
			trends[i].Investments = row.Total
		}
	}

	return trends, nil
}

// breakdown builds the top category groups for one action bucket.
func (s *SummaryService) breakdown(ctx context.Context, ownerID string, action domain.Action, from, to *time.Time, total decimal.Decimal) (dto.BreakdownResponse, error) {
	groups, hasMore, err := s.summaryRepo.GetCategoryTotals(ctx, ownerID, action, from, to, breakdownLimit)
	if err != nil {
		return dto.BreakdownResponse{}, err
	}

	resp := dto.BreakdownResponse{
		Total:          total,
		Categories:     make([]dto.CategoryResponse, 0, len(groups)),
		AverageMonthly: total.DivRound(decimal.NewFromInt(averageMonths), 2),
		HasMore:        hasMore,
	}
	for _, g := range groups {
		resp.Categories = append(resp.Categories, dto.CategoryResponse{
			Category: g.Category,
			Total:    g.Total,
		})
	}
	return resp, nil
}

// savingsRate returns (income - expense) / income as a percentage.
// Zero income yields a zero rate, never a division by zero.
func savingsRate(income, expense decimal.Decimal) float64 {
	if income.Sign() <= 0 {
		return 0
	}
	rate, _ := income.Sub(expense).Div(income).Mul(decimal.NewFromInt(100)).Float64()
	return rate
}
