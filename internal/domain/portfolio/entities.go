package portfolio

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("portfolio not found")
	ErrMissingData    = errors.New("could not calculate score: missing data")
	ErrMalformedInput = errors.New("malformed transaction input")
)

// Table: portfolios
type Portfolio struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	PortfolioID  string              `gorm:"column:portfolio_id;size:32;not null;uniqueIndex:ux_portfolios_portfolio_id" json:"portfolio_id"`
	AvgMRR       decimal.NullDecimal `gorm:"column:avg_mrr;type:decimal(18,2)" json:"avg_mrr"`
	AvgChurnRate decimal.NullDecimal `gorm:"column:avg_churn_rate;type:decimal(5,2)" json:"avg_churn_rate"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Metrics []MonthlyMetric `gorm:"foreignKey:PortfolioID;references:ID" json:"metrics,omitempty"`
}

func (Portfolio) TableName() string { return "portfolios" }

// Table: portfolio_metrics. One row per observed month, never updated.
type MonthlyMetric struct {
	ID          uint64              `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PortfolioID uint64              `gorm:"column:portfolio_id;not null;index:idx_metrics_portfolio_month,priority:1" json:"-"`
	Year        int                 `gorm:"column:year;not null;index:idx_metrics_portfolio_month,priority:2" json:"year"`
	Month       int                 `gorm:"column:month;not null;index:idx_metrics_portfolio_month,priority:3" json:"month"`
	MRR         decimal.NullDecimal `gorm:"column:mrr;type:decimal(18,2)" json:"mrr"`
	// percent; nil for the first observed month
	ChurnRate *float64 `gorm:"column:churn_rate" json:"churn_rate"`
}

func (MonthlyMetric) TableName() string { return "portfolio_metrics" }

// Score evaluates the portfolio's stored averages.
func (p *Portfolio) Score() (decimal.Decimal, error) {
	return Score(p.AvgMRR, p.AvgChurnRate)
}

// MaxAdvance reads both averages once, so the score and the advance come from the same snapshot.
func (p *Portfolio) MaxAdvance() (decimal.Decimal, bool, error) {
	score, err := p.Score()
	if err != nil {
		return decimal.Zero, false, err
	}
	maxAdvance, eligible := Advance(score, p.AvgMRR.Decimal)
	return maxAdvance, eligible, nil
}
