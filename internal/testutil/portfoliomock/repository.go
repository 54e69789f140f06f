package portfoliomock

import (
	"context"

	domain "revenue-advance/internal/domain/portfolio"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, p *domain.Portfolio) error
	GetByPortfolioIDFn func(ctx context.Context, portfolioID string) (*domain.Portfolio, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, p *domain.Portfolio) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPortfolioID(ctx context.Context, portfolioID string) (*domain.Portfolio, error) {
	if m.GetByPortfolioIDFn != nil {
		return m.GetByPortfolioIDFn(ctx, portfolioID)
	}
	return nil, context.Canceled
}
