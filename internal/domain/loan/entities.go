package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidInput      = errors.New("invalid loan application")
	ErrInvalidTransition = errors.New("invalid loan state transition")
	ErrProcessing        = errors.New("there was an error processing the loan application")
)

type State string

const (
	StatePending  State = "PENDING"
	StateApproved State = "APPROVED"
	StateRejected State = "REJECTED"
)

func (s State) Terminal() bool { return s == StateApproved || s == StateRejected }

type Loan struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID string `gorm:"size:32;not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	// FK to portfolios.id (numeric)
	PortfolioID    uint64          `gorm:"column:portfolio_id;not null;index:idx_loans_portfolio" json:"-"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	State          State           `gorm:"type:varchar(10);not null;default:'PENDING'" json:"state"`
	StateUpdatedAt time.Time       `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// TransitionTo moves a pending loan to a terminal state. Terminal loans never move again.
func (l *Loan) TransitionTo(s State, at time.Time) error {
	if l.State != StatePending || !s.Terminal() {
		return ErrInvalidTransition
	}
	l.State = s
	l.StateUpdatedAt = at
	return nil
}
