package portfolio

import "github.com/shopspring/decimal"

var (
	mrrScale   = decimal.NewFromInt(1000)
	churnScale = decimal.NewFromInt(10)
)

// Averages returns the mean MRR and mean churn rate over the rows that carry a value.
// Both are rounded to cents, matching the persisted column scale.
func Averages(metrics []MonthlyMetric) (avgMRR, avgChurn decimal.NullDecimal) {
	var (
		mrrSum, churnSum decimal.Decimal
		mrrN, churnN     int64
	)
	for _, m := range metrics {
		if m.MRR.Valid {
			mrrSum = mrrSum.Add(m.MRR.Decimal)
			mrrN++
		}
		if m.ChurnRate != nil {
			churnSum = churnSum.Add(decimal.NewFromFloat(*m.ChurnRate))
			churnN++
		}
	}
	if mrrN > 0 {
		avgMRR = decimal.NewNullDecimal(mrrSum.Div(decimal.NewFromInt(mrrN)).Round(2))
	}
	if churnN > 0 {
		avgChurn = decimal.NewNullDecimal(churnSum.Div(decimal.NewFromInt(churnN)).Round(2))
	}
	return avgMRR, avgChurn
}

// Score = avg_mrr/1000 - avg_churn_rate*10, rounded to 2 places.
func Score(avgMRR, avgChurn decimal.NullDecimal) (decimal.Decimal, error) {
	if !avgMRR.Valid || !avgChurn.Valid {
		return decimal.Zero, ErrMissingData
	}
	s := avgMRR.Decimal.Div(mrrScale).Sub(avgChurn.Decimal.Mul(churnScale))
	return s.Round(2), nil
}
