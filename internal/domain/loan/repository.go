package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// UpdateState persists l.State only if the stored row is still PENDING
	UpdateState(ctx context.Context, l *Loan) error
}
