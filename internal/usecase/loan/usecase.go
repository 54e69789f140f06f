package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"revenue-advance/internal/domain/loan"
	"revenue-advance/internal/domain/portfolio"
	"revenue-advance/internal/domain/uow"
	"revenue-advance/pkg/id"
)

type Usecase struct {
	repo loan.Repository
	uow  uow.UnitOfWork
	log  *zap.Logger
	now  func() time.Time
}

// NewUsecase: repo serves status reads, the UoW runs applications.
func NewUsecase(r loan.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, uow: tx, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// evaluate decides from a single read of the portfolio averages.
func evaluate(p *portfolio.Portfolio, amount decimal.Decimal) (loan.State, string) {
	score, err := p.Score()
	if err != nil {
		return loan.StateRejected, ReasonScoreError
	}
	if !portfolio.Eligible(score) {
		return loan.StateRejected, ReasonInsufficientScore
	}
	maxAdvance, _ := portfolio.Advance(score, p.AvgMRR.Decimal)
	if amount.GreaterThan(maxAdvance) {
		return loan.StateRejected, ReasonAmountExceedsMax
	}
	return loan.StateApproved, ""
}

// Apply underwrites one advance request. The loan is created PENDING and moved to its terminal
// state in the same transaction, so a failure leaves no loan behind.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*Decision, error) {
	in.PortfolioID = strings.TrimSpace(in.PortfolioID)
	if in.PortfolioID == "" || !in.Amount.IsPositive() {
		return nil, loan.ErrInvalidInput
	}
	if u.uow == nil {
		return nil, loan.ErrProcessing
	}

	var dec *Decision
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Portfolios.GetByPortfolioID(ctx, in.PortfolioID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return portfolio.ErrNotFound
		}
		if err != nil {
			return err
		}

		now := u.now()
		l := &loan.Loan{
			LoanID:         id.NewID32(),
			PortfolioID:    p.ID,
			Amount:         in.Amount,
			State:          loan.StatePending,
			StateUpdatedAt: now,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		next, reason := evaluate(p, in.Amount)
		if err := l.TransitionTo(next, now); err != nil {
			return err
		}
		if err := r.Loans.UpdateState(ctx, l); err != nil {
			return err
		}

		dec = newDecision(l, p.PortfolioID, reason)
		return nil
	})
	if errors.Is(err, portfolio.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		u.log.Error("loan application failed",
			zap.String("portfolio_id", in.PortfolioID),
			zap.String("amount", in.Amount.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", loan.ErrProcessing, err)
	}

	u.log.Info("loan application decided",
		zap.String("loan_id", dec.Loan.LoanID),
		zap.String("portfolio_id", in.PortfolioID),
		zap.String("state", dec.Loan.State),
	)
	return dec, nil
}

func newDecision(l *loan.Loan, portfolioID, reason string) *Decision {
	dto := LoanDTO{LoanID: l.LoanID, PortfolioID: portfolioID, State: string(l.State)}
	if l.State == loan.StateRejected {
		return &Decision{Outcome: OutcomeRejected, Loan: dto, Message: reason}
	}
	amount := l.Amount
	dto.Amount = &amount
	dto.RepaymentSchedule = loan.RepaymentSchedule(l.Amount)
	return &Decision{Outcome: OutcomeApproved, Loan: dto}
}

func (u *Usecase) Status(ctx context.Context, loanID string) (*StatusDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loan.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	amount := l.Amount
	return &StatusDTO{Loan: LoanDTO{LoanID: l.LoanID, Amount: &amount, State: string(l.State)}}, nil
}
