package uow

import (
	"context"

	"revenue-advance/internal/domain/loan"
	"revenue-advance/internal/domain/portfolio"
)

// Repos are bound to the same transaction.
type Repos struct {
	Portfolios portfolio.Repository
	Loans      loan.Repository
}

type UnitOfWork interface {
	// WithinTx commits if fn returns nil and rolls back otherwise
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
