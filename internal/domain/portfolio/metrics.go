package portfolio

import "github.com/shopspring/decimal"

// ChurnRate is the percentage of prev's clients missing from cur.
// ok is false when prev is empty.
func ChurnRate(prev, cur map[string]struct{}) (rate float64, ok bool) {
	if len(prev) == 0 {
		return 0, false
	}
	churned := 0
	for c := range prev {
		if _, still := cur[c]; !still {
			churned++
		}
	}
	return float64(churned) / float64(len(prev)) * 100, true
}

// CalculateMetrics merges the MRR series with the churn series, one row per observed month.
// Churn compares each month with the previous observed month; the first month has none.
func CalculateMetrics(agg *MonthlyAggregate) []MonthlyMetric {
	keys := agg.Keys()
	out := make([]MonthlyMetric, 0, len(keys))
	for i, k := range keys {
		m := MonthlyMetric{Year: k.Year, Month: k.Month}
		if rev, ok := agg.Revenue[k]; ok {
			m.MRR = decimal.NewNullDecimal(rev)
		}
		if i > 0 {
			if rate, ok := ChurnRate(agg.Clients[keys[i-1]], agg.Clients[k]); ok {
				m.ChurnRate = &rate
			}
		}
		out = append(out, m)
	}
	return out
}
