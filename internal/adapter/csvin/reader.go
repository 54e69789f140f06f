package csvin

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"revenue-advance/internal/domain/portfolio"
)

type column int

const (
	colClient column = iota
	colAmount
	colYear
	colMonth
	numColumns
)

var columnNames = [numColumns]string{"client_id", "amount", "year", "month"}

// header aliases, compared after trimming and lower-casing
var aliases = map[string]column{
	"client_id":   colClient,
	"id_cliente":  colClient,
	"amount":      colAmount,
	"monto (usd)": colAmount,
	"monto":       colAmount,
	"year":        colYear,
	"año":         colYear,
	"month":       colMonth,
	"mes":         colMonth,
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", portfolio.ErrMalformedInput, fmt.Sprintf(format, args...))
}

// Read parses a transaction ledger with a header row. Extra columns are ignored.
func Read(r io.Reader) ([]portfolio.TransactionRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, malformed("empty file")
	}
	if err != nil {
		return nil, malformed("header: %v", err)
	}

	idx := [numColumns]int{-1, -1, -1, -1}
	for i, h := range header {
		if c, ok := aliases[normalizeHeader(h)]; ok && idx[c] < 0 {
			idx[c] = i
		}
	}
	for c, i := range idx {
		if i < 0 {
			return nil, malformed("missing column %q", columnNames[c])
		}
	}

	var out []portfolio.TransactionRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed("%v", err)
		}
		line, _ := cr.FieldPos(0)
		rec, err := parseRow(row, idx, line)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func field(row []string, idx [numColumns]int, c column, line int) (string, error) {
	i := idx[c]
	if i >= len(row) {
		return "", malformed("line %d: missing %s", line, columnNames[c])
	}
	v := strings.TrimSpace(row[i])
	if v == "" {
		return "", malformed("line %d: empty %s", line, columnNames[c])
	}
	return v, nil
}

func parseRow(row []string, idx [numColumns]int, line int) (portfolio.TransactionRecord, error) {
	var rec portfolio.TransactionRecord

	client, err := field(row, idx, colClient, line)
	if err != nil {
		return rec, err
	}
	rawAmount, err := field(row, idx, colAmount, line)
	if err != nil {
		return rec, err
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return rec, malformed("line %d: amount %q is not numeric", line, rawAmount)
	}
	year, err := intField(row, idx, colYear, line)
	if err != nil {
		return rec, err
	}
	month, err := intField(row, idx, colMonth, line)
	if err != nil {
		return rec, err
	}

	return portfolio.TransactionRecord{ClientID: client, Amount: amount, Year: year, Month: month}, nil
}

func intField(row []string, idx [numColumns]int, c column, line int) (int, error) {
	raw, err := field(row, idx, c, line)
	if err != nil {
		return 0, err
	}
	// accept "2024.0" the way spreadsheet exports write integers
	if f, ferr := strconv.ParseFloat(raw, 64); ferr == nil && f == float64(int(f)) {
		return int(f), nil
	}
	return 0, malformed("line %d: %s %q is not an integer", line, columnNames[c], raw)
}
