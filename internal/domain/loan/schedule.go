package loan

import "github.com/shopspring/decimal"

const TermMonths = 12

var factorRate = decimal.RequireFromString("1.2")

// FactorRate is the flat multiplier applied to the principal to get the total repayment.
func FactorRate() decimal.Decimal { return factorRate }

type Installment struct {
	Month     int             `json:"month"`
	AmountDue decimal.Decimal `json:"amount_due"`
}

// RepaymentSchedule splits amount*FactorRate into TermMonths equal installments.
func RepaymentSchedule(amount decimal.Decimal) []Installment {
	due := amount.Mul(factorRate).Div(decimal.NewFromInt(TermMonths))
	out := make([]Installment, 0, TermMonths)
	for m := 1; m <= TermMonths; m++ {
		out = append(out, Installment{Month: m, AmountDue: due})
	}
	return out
}
