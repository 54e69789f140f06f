package loan

import (
	"github.com/shopspring/decimal"

	"revenue-advance/internal/domain/loan"
)

const (
	ReasonScoreError        = "Loan application rejected due to error calculating score"
	ReasonInsufficientScore = "Loan application rejected due to insufficient portfolio score"
	ReasonAmountExceedsMax  = "Requested loan amount exceeds the maximum loan limit"
)

type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
)

type ApplyInput struct {
	PortfolioID string
	Amount      decimal.Decimal
}

type LoanDTO struct {
	LoanID            string             `json:"id"`
	PortfolioID       string             `json:"portfolio_id,omitempty"`
	Amount            *decimal.Decimal   `json:"amount,omitempty"`
	State             string             `json:"state"`
	RepaymentSchedule []loan.Installment `json:"repayment_schedule,omitempty"`
}

// Decision is the terminal result of one application. Rejections carry Message, approvals a schedule.
type Decision struct {
	Outcome Outcome `json:"-"`
	Loan    LoanDTO `json:"loan"`
	Message string  `json:"message,omitempty"`
}

type StatusDTO struct {
	Loan LoanDTO `json:"loan"`
}
