package portfolio

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func rec(client, amount string, year, month int) TransactionRecord {
	return TransactionRecord{ClientID: client, Amount: d(amount), Year: year, Month: month}
}

func TestAggregate_ConservesRevenueAndSortsMonths(t *testing.T) {
	records := []TransactionRecord{
		rec("C", "10.50", 2024, 3),
		rec("A", "1000", 2024, 1),
		rec("A", "250.25", 2024, 1), // same client, same month: sums
		rec("B", "2000", 2023, 12),
		rec("B", "99.99", 2024, 3),
	}
	agg, err := Aggregate(records)
	if err != nil {
		t.Fatalf("Aggregate err: %v", err)
	}

	want := decimal.Zero
	for _, r := range records {
		want = want.Add(r.Amount)
	}
	if !agg.Total().Equal(want) {
		t.Fatalf("total = %s, want %s", agg.Total(), want)
	}

	keys := agg.Keys()
	wantKeys := []MonthKey{{2023, 12}, {2024, 1}, {2024, 3}}
	if len(keys) != len(wantKeys) {
		t.Fatalf("keys = %v, want %v", keys, wantKeys)
	}
	for i := range keys {
		if keys[i] != wantKeys[i] {
			t.Fatalf("keys[%d] = %v, want %v", i, keys[i], wantKeys[i])
		}
	}
	if got := agg.Revenue[MonthKey{2024, 1}]; !got.Equal(d("1250.25")) {
		t.Fatalf("2024-01 revenue = %s", got)
	}
	if n := len(agg.Clients[MonthKey{2024, 1}]); n != 1 {
		t.Fatalf("2024-01 cohort size = %d, want 1", n)
	}
}

func TestAggregate_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		records []TransactionRecord
	}{
		{"empty", nil},
		{"blank client", []TransactionRecord{rec("  ", "1", 2024, 1)}},
		{"negative amount", []TransactionRecord{rec("A", "-1", 2024, 1)}},
		{"month zero", []TransactionRecord{rec("A", "1", 2024, 0)}},
		{"month thirteen", []TransactionRecord{rec("A", "1", 2024, 13)}},
		{"year zero", []TransactionRecord{rec("A", "1", 0, 5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Aggregate(tt.records); !errors.Is(err, ErrMalformedInput) {
				t.Fatalf("want ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestChurnRate(t *testing.T) {
	set := func(ids ...string) map[string]struct{} {
		m := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			m[id] = struct{}{}
		}
		return m
	}
	if _, ok := ChurnRate(set(), set("A")); ok {
		t.Fatal("empty previous cohort must yield no churn")
	}
	rate, ok := ChurnRate(set("A", "B", "C", "D"), set("A", "E"))
	if !ok || rate != 75 {
		t.Fatalf("rate = %v ok=%v, want 75", rate, ok)
	}
	rate, ok = ChurnRate(set("A"), set("A", "B"))
	if !ok || rate != 0 {
		t.Fatalf("rate = %v ok=%v, want 0", rate, ok)
	}
}

func TestCalculateMetrics_FirstMonthHasNoChurn(t *testing.T) {
	agg, err := Aggregate([]TransactionRecord{
		rec("A", "1000", 2024, 2),
		rec("B", "2000", 2024, 1),
		rec("A", "1000", 2024, 1),
		rec("C", "500", 2024, 3),
	})
	if err != nil {
		t.Fatal(err)
	}
	ms := CalculateMetrics(agg)
	if len(ms) != 3 {
		t.Fatalf("len = %d, want 3", len(ms))
	}
	if ms[0].ChurnRate != nil {
		t.Fatalf("first month churn = %v, want nil", *ms[0].ChurnRate)
	}
	if ms[1].ChurnRate == nil || *ms[1].ChurnRate != 50 {
		t.Fatalf("month 2 churn = %v, want 50", ms[1].ChurnRate)
	}
	if ms[2].ChurnRate == nil || *ms[2].ChurnRate != 100 {
		t.Fatalf("month 3 churn = %v, want 100", ms[2].ChurnRate)
	}
	for _, m := range ms {
		if !m.MRR.Valid {
			t.Fatalf("month %d-%d has no MRR", m.Year, m.Month)
		}
	}
}

func TestAverages(t *testing.T) {
	c := func(f float64) *float64 { return &f }
	ms := []MonthlyMetric{
		{MRR: decimal.NewNullDecimal(d("100"))},
		{MRR: decimal.NewNullDecimal(d("200")), ChurnRate: c(10)},
		{MRR: decimal.NewNullDecimal(d("301")), ChurnRate: c(20)},
		{ChurnRate: c(30)},
	}
	mrr, churn := Averages(ms)
	if !mrr.Valid || !mrr.Decimal.Equal(d("200.33")) {
		t.Fatalf("avg mrr = %v", mrr)
	}
	if !churn.Valid || !churn.Decimal.Equal(d("20")) {
		t.Fatalf("avg churn = %v", churn)
	}

	mrr, churn = Averages(nil)
	if mrr.Valid || churn.Valid {
		t.Fatalf("empty series must give null averages, got %v %v", mrr, churn)
	}
}

func TestScore_MissingData(t *testing.T) {
	valid := decimal.NewNullDecimal(d("1"))
	for _, tc := range []struct{ mrr, churn decimal.NullDecimal }{
		{decimal.NullDecimal{}, valid},
		{valid, decimal.NullDecimal{}},
		{decimal.NullDecimal{}, decimal.NullDecimal{}},
	} {
		if _, err := Score(tc.mrr, tc.churn); !errors.Is(err, ErrMissingData) {
			t.Fatalf("want ErrMissingData, got %v", err)
		}
	}
}

func TestScore_Formula(t *testing.T) {
	s, err := Score(decimal.NewNullDecimal(d("100000")), decimal.NewNullDecimal(d("1.234")))
	if err != nil {
		t.Fatal(err)
	}
	// 100 - 12.34
	if !s.Equal(d("87.66")) {
		t.Fatalf("score = %s, want 87.66", s)
	}
}

func TestMultiplier_Boundaries(t *testing.T) {
	tests := []struct {
		score    string
		eligible bool
		mult     string
	}{
		{"-497.75", false, "0"},
		{"70.00", false, "0"},
		{"70.01", true, "1.2"},
		{"85.00", true, "1.2"},
		{"85.01", true, "1.4"},
		{"1000", true, "1.4"},
	}
	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			mult, ok := Multiplier(d(tt.score))
			if ok != tt.eligible || !mult.Equal(d(tt.mult)) {
				t.Fatalf("Multiplier(%s) = (%s,%v), want (%s,%v)", tt.score, mult, ok, tt.mult, tt.eligible)
			}
		})
	}
}

func TestAdvance_MonotonicInScore(t *testing.T) {
	avg := d("10000")
	prev := decimal.Zero
	for s := -100.0; s <= 200; s += 0.5 {
		got, _ := Advance(decimal.NewFromFloat(s), avg)
		if got.LessThan(prev) {
			t.Fatalf("advance decreased at score %v: %s < %s", s, got, prev)
		}
		prev = got
	}
	got, ok := Advance(d("80"), d("1000.015"))
	if !ok || !got.Equal(d("1200.02")) {
		t.Fatalf("advance = %s ok=%v, want 1200.02", got, ok)
	}
}

func TestPortfolio_EndToEndExample(t *testing.T) {
	agg, err := Aggregate([]TransactionRecord{
		rec("A", "1000", 2024, 1),
		rec("B", "2000", 2024, 1),
		rec("A", "1500", 2024, 2),
	})
	if err != nil {
		t.Fatal(err)
	}
	ms := CalculateMetrics(agg)
	if !ms[0].MRR.Decimal.Equal(d("3000")) || !ms[1].MRR.Decimal.Equal(d("1500")) {
		t.Fatalf("mrr series = %v, %v", ms[0].MRR, ms[1].MRR)
	}
	if ms[1].ChurnRate == nil || *ms[1].ChurnRate != 50 {
		t.Fatalf("churn month 2 = %v", ms[1].ChurnRate)
	}

	avgMRR, avgChurn := Averages(ms)
	p := &Portfolio{AvgMRR: avgMRR, AvgChurnRate: avgChurn}
	if !p.AvgMRR.Decimal.Equal(d("2250")) || !p.AvgChurnRate.Decimal.Equal(d("50")) {
		t.Fatalf("averages = %v / %v", p.AvgMRR, p.AvgChurnRate)
	}
	score, err := p.Score()
	if err != nil || !score.Equal(d("-497.75")) {
		t.Fatalf("score = %s err=%v, want -497.75", score, err)
	}
	maxAdvance, eligible, err := p.MaxAdvance()
	if err != nil || eligible || !maxAdvance.IsZero() {
		t.Fatalf("max advance = %s eligible=%v err=%v", maxAdvance, eligible, err)
	}
}

func TestPortfolio_MaxAdvance_MissingData(t *testing.T) {
	p := &Portfolio{AvgMRR: decimal.NewNullDecimal(d("100000"))}
	if _, _, err := p.MaxAdvance(); !errors.Is(err, ErrMissingData) {
		t.Fatalf("want ErrMissingData, got %v", err)
	}
}

func TestPolicyThresholds(t *testing.T) {
	if !EligibilityThreshold().Equal(d("70")) || !PremiumThreshold().Equal(d("85")) {
		t.Fatalf("thresholds = %s / %s", EligibilityThreshold(), PremiumThreshold())
	}
	for _, tt := range []struct {
		score string
		want  bool
	}{{"70", false}, {"70.01", true}, {"-1", false}, {"100", true}} {
		if got := Eligible(d(tt.score)); got != tt.want {
			t.Fatalf("Eligible(%s) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
