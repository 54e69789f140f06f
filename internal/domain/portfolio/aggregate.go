package portfolio

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionRecord is one raw ledger row. Several rows per client and month are allowed; amounts sum.
type TransactionRecord struct {
	ClientID string
	Amount   decimal.Decimal
	Year     int
	Month    int
}

type MonthKey struct {
	Year  int
	Month int
}

func (k MonthKey) Less(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

func (k MonthKey) String() string { return fmt.Sprintf("%04d-%02d", k.Year, k.Month) }

// MonthlyAggregate holds revenue and the active client cohort per observed month.
type MonthlyAggregate struct {
	Revenue map[MonthKey]decimal.Decimal
	Clients map[MonthKey]map[string]struct{}
	keys    []MonthKey
}

// Keys returns the observed months in chronological order.
func (a *MonthlyAggregate) Keys() []MonthKey {
	out := make([]MonthKey, len(a.keys))
	copy(out, a.keys)
	return out
}

// Total is the revenue summed over every month.
func (a *MonthlyAggregate) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range a.Revenue {
		total = total.Add(v)
	}
	return total
}

func validateRecord(i int, r TransactionRecord) error {
	switch {
	case strings.TrimSpace(r.ClientID) == "":
		return fmt.Errorf("%w: record %d: missing client_id", ErrMalformedInput, i)
	case r.Amount.IsNegative():
		return fmt.Errorf("%w: record %d: negative amount %s", ErrMalformedInput, i, r.Amount)
	case r.Year <= 0:
		return fmt.Errorf("%w: record %d: invalid year %d", ErrMalformedInput, i, r.Year)
	case r.Month < 1 || r.Month > 12:
		return fmt.Errorf("%w: record %d: invalid month %d", ErrMalformedInput, i, r.Month)
	}
	return nil
}

// Aggregate groups records by (year, month). Input order does not matter.
func Aggregate(records []TransactionRecord) (*MonthlyAggregate, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no transactions", ErrMalformedInput)
	}
	agg := &MonthlyAggregate{
		Revenue: make(map[MonthKey]decimal.Decimal),
		Clients: make(map[MonthKey]map[string]struct{}),
	}
	for i, r := range records {
		if err := validateRecord(i, r); err != nil {
			return nil, err
		}
		k := MonthKey{Year: r.Year, Month: r.Month}
		cohort, ok := agg.Clients[k]
		if !ok {
			cohort = make(map[string]struct{})
			agg.Clients[k] = cohort
			agg.keys = append(agg.keys, k)
		}
		cohort[strings.TrimSpace(r.ClientID)] = struct{}{}
		agg.Revenue[k] = agg.Revenue[k].Add(r.Amount)
	}
	sort.Slice(agg.keys, func(i, j int) bool { return agg.keys[i].Less(agg.keys[j]) })
	return agg, nil
}
