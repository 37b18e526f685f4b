package dto

import (
	"time"

	"github.com/finly-app/finly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlyTrendResponse is one month of the trailing trend series.
type MonthlyTrendResponse struct {
	Month       string          `json:"month"` // YYYY-MM
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Investments decimal.Decimal `json:"investments"`
}

// CategoryResponse is one category group in a breakdown.
type CategoryResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// BreakdownResponse is a per-type breakdown for one action bucket.
// AverageMonthly always divides by twelve months regardless of the
// actual data span.
type BreakdownResponse struct {
	Total          decimal.Decimal    `json:"total"`
	Categories     []CategoryResponse `json:"categories"`
	AverageMonthly decimal.Decimal    `json:"averageMonthly"`
	HasMore        bool               `json:"hasMore"`
}

// SummaryResponse is the full owner-scoped financial summary.
// All numeric fields are zero and all lists empty when no entries match.
type SummaryResponse struct {
	TotalIncome           decimal.Decimal        `json:"totalIncome"`
	IncomeCount           int64                  `json:"incomeCount"`
	TotalExpense          decimal.Decimal        `json:"totalExpense"`
	ExpenseCount          int64                  `json:"expenseCount"`
	TotalInvestment       decimal.Decimal        `json:"totalInvestment"`
	InvestmentCount       int64                  `json:"investmentCount"`
	Balance               decimal.Decimal        `json:"balance"`
	SavingsRate           float64                `json:"savingsRate"` // Percentage; 0 when there is no income
	MonthlyTrends         []MonthlyTrendResponse `json:"monthlyTrends"`
	ExpenseBreakdown      BreakdownResponse      `json:"expenseBreakdown"`
	IncomeBreakdown       BreakdownResponse      `json:"incomeBreakdown"`
	InvestmentPerformance []CategoryResponse     `json:"investmentPerformance"`
}

// TemporalPointResponse is one (month, action) point of the analytics series.
type TemporalPointResponse struct {
	Month  time.Time       `json:"month"`
	Action domain.Action   `json:"action"`
	Total  decimal.Decimal `json:"total"`
}

// CategoryPointResponse is one (category, action) group of the analytics series.
type CategoryPointResponse struct {
	Category string          `json:"category"`
	Action   domain.Action   `json:"action"`
	Total    decimal.Decimal `json:"total"`
}

// AnalyticsSums holds the per-action sums over the analytics filter.
type AnalyticsSums struct {
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Investments decimal.Decimal `json:"investments"`
}

// AnalyticsResponse is the filtered analytics payload.
type AnalyticsResponse struct {
	TemporalData []TemporalPointResponse `json:"temporalData"`
	CategoryData []CategoryPointResponse `json:"categoryData"`
	Sums         AnalyticsSums           `json:"sums"`
}
