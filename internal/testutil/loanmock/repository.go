package loanmock

import (
	"context"

	domain "revenue-advance/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	UpdateStateFn func(ctx context.Context, l *domain.Loan) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateState(ctx context.Context, l *domain.Loan) error {
	if m.UpdateStateFn != nil {
		return m.UpdateStateFn(ctx, l)
	}
	return nil
}
