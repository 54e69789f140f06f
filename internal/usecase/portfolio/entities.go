package portfolio

import (
	"github.com/shopspring/decimal"

	domain "revenue-advance/internal/domain/portfolio"
)

const (
	msgEligible    = "The company is eligible to ask for a loan."
	msgNotEligible = "The company is not eligible to ask for a loan based on the current data."
	msgMissingData = "The company is not eligible to ask for a loan: not enough history to calculate a score."
)

type IngestDTO struct {
	PortfolioID  string              `json:"portfolio_id,omitempty"`
	AvgMRR       decimal.NullDecimal `json:"avg_mrr"`
	AvgChurnRate decimal.NullDecimal `json:"avg_churn_rate"`
	MaxAdvance   decimal.Decimal     `json:"max_advance"`
	Eligible     bool                `json:"eligible"`
	Months       int                 `json:"months"`
	Message      string              `json:"message"`
}

type ScoreDTO struct {
	PortfolioID string          `json:"portfolio_id"`
	Score       decimal.Decimal `json:"score"`
}

type AdvanceDTO struct {
	PortfolioID string          `json:"portfolio_id"`
	MaxAdvance  decimal.Decimal `json:"max_advance"`
	Eligible    bool            `json:"eligible"`
}

type MetricsDTO struct {
	PortfolioID  string                 `json:"portfolio_id"`
	AvgMRR       decimal.NullDecimal    `json:"avg_mrr"`
	AvgChurnRate decimal.NullDecimal    `json:"avg_churn_rate"`
	Metrics      []domain.MonthlyMetric `json:"metrics"`
}
