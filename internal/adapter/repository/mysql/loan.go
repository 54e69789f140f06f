package mysql

import (
	"context"

	loanDomain "revenue-advance/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

// UpdateState is a compare-and-set on PENDING; a second transition affects no rows.
func (r *LoanRepository) UpdateState(ctx context.Context, l *loanDomain.Loan) error {
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("id = ? AND state = ?", l.ID, loanDomain.StatePending).
		Updates(map[string]any{
			"state":            l.State,
			"state_updated_at": l.StateUpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrInvalidTransition
	}
	return nil
}
