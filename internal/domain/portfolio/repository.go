package portfolio

import "context"

type Repository interface {
	// Create persists the portfolio together with its Metrics
	Create(ctx context.Context, p *Portfolio) error

	// GetByPortfolioID loads by public id, metrics ordered by (year, month)
	GetByPortfolioID(ctx context.Context, portfolioID string) (*Portfolio, error)
}
