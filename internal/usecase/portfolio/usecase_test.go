package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "revenue-advance/internal/domain/portfolio"
	"revenue-advance/internal/domain/uow"
	"revenue-advance/internal/testutil/portfoliomock"
	"revenue-advance/internal/testutil/uowmock"
	"revenue-advance/pkg/id"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func rec(client, amount string, year, month int) domain.TransactionRecord {
	return domain.TransactionRecord{ClientID: client, Amount: d(amount), Year: year, Month: month}
}

// newCapturingUsecase stores the created portfolio in *out.
func newCapturingUsecase(out **domain.Portfolio) *Usecase {
	repo := &portfoliomock.Repo{
		CreateFn: func(ctx context.Context, p *domain.Portfolio) error {
			p.ID = 42
			*out = p
			return nil
		},
	}
	return NewUsecase(repo, uowmock.New().WithRepos(uow.Repos{Portfolios: repo}), nil)
}

func TestIngest_IneligibleExample(t *testing.T) {
	var stored *domain.Portfolio
	uc := newCapturingUsecase(&stored)

	dto, err := uc.Ingest(context.Background(), []domain.TransactionRecord{
		rec("A", "1000", 2024, 1),
		rec("B", "2000", 2024, 1),
		rec("A", "1500", 2024, 2),
	})
	if err != nil {
		t.Fatalf("Ingest err: %v", err)
	}
	if !id.IsID32(dto.PortfolioID) || stored == nil || stored.PortfolioID != dto.PortfolioID {
		t.Fatalf("portfolio id not propagated: dto=%q stored=%+v", dto.PortfolioID, stored)
	}
	if len(stored.Metrics) != 2 || dto.Months != 2 {
		t.Fatalf("metrics stored = %d, months = %d", len(stored.Metrics), dto.Months)
	}
	if !dto.AvgMRR.Decimal.Equal(d("2250")) || !dto.AvgChurnRate.Decimal.Equal(d("50")) {
		t.Fatalf("averages = %v / %v", dto.AvgMRR, dto.AvgChurnRate)
	}
	if dto.Eligible || !dto.MaxAdvance.IsZero() || dto.Message != msgNotEligible {
		t.Fatalf("unexpected eligibility: %+v", dto)
	}
}

func TestIngest_EligiblePremium(t *testing.T) {
	var stored *domain.Portfolio
	uc := newCapturingUsecase(&stored)

	// 100k MRR in both months, no churn: score = 100 - 0 = 100 -> x1.4
	dto, err := uc.Ingest(context.Background(), []domain.TransactionRecord{
		rec("A", "60000", 2024, 1),
		rec("B", "40000", 2024, 1),
		rec("A", "50000", 2024, 2),
		rec("B", "50000", 2024, 2),
	})
	if err != nil {
		t.Fatalf("Ingest err: %v", err)
	}
	if !dto.Eligible || !dto.MaxAdvance.Equal(d("140000")) || dto.Message != msgEligible {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestIngest_SingleMonthMissingChurn(t *testing.T) {
	var stored *domain.Portfolio
	uc := newCapturingUsecase(&stored)

	dto, err := uc.Ingest(context.Background(), []domain.TransactionRecord{rec("A", "500", 2024, 6)})
	if err != nil {
		t.Fatalf("Ingest err: %v", err)
	}
	if stored == nil {
		t.Fatal("portfolio must still be stored")
	}
	if dto.AvgChurnRate.Valid || dto.Eligible || dto.Message != msgMissingData {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestIngest_MalformedNotStored(t *testing.T) {
	uc := NewUsecase(&portfoliomock.Repo{}, &uowmock.UoW{
		WithinTxFn: func(context.Context, func(uow.Repos) error) error {
			t.Fatal("nothing should be stored for malformed input")
			return nil
		},
	}, nil)
	_, err := uc.Ingest(context.Background(), []domain.TransactionRecord{rec("A", "-5", 2024, 1)})
	if !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("want ErrMalformedInput, got %v", err)
	}
}

func TestIngest_StoreError(t *testing.T) {
	sentinel := errors.New("db down")
	uc := NewUsecase(&portfoliomock.Repo{}, uowmock.New().WithWithinTx(
		func(context.Context, func(uow.Repos) error) error { return sentinel },
	), nil)
	_, err := uc.Ingest(context.Background(), []domain.TransactionRecord{rec("A", "5", 2024, 1)})
	if !errors.Is(err, sentinel) {
		t.Fatalf("want wrapped sentinel, got %v", err)
	}
}

func TestScoreAndMaxAdvance(t *testing.T) {
	stored := map[string]*domain.Portfolio{
		"good": {
			PortfolioID:  "good",
			AvgMRR:       decimal.NewNullDecimal(d("80000")),
			AvgChurnRate: decimal.NewNullDecimal(d("0.5")),
		},
		"partial": {PortfolioID: "partial", AvgMRR: decimal.NewNullDecimal(d("80000"))},
	}
	repo := &portfoliomock.Repo{
		GetByPortfolioIDFn: func(ctx context.Context, pid string) (*domain.Portfolio, error) {
			if p, ok := stored[pid]; ok {
				return p, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(repo, uowmock.New(), nil)
	ctx := context.Background()

	// 80 - 5 = 75 -> standard tier
	s, err := uc.Score(ctx, "good")
	if err != nil || !s.Score.Equal(d("75")) {
		t.Fatalf("Score = %+v, %v", s, err)
	}
	a, err := uc.MaxAdvance(ctx, "good")
	if err != nil || !a.Eligible || !a.MaxAdvance.Equal(d("96000")) {
		t.Fatalf("MaxAdvance = %+v, %v", a, err)
	}

	if _, err := uc.Score(ctx, "partial"); !errors.Is(err, domain.ErrMissingData) {
		t.Fatalf("partial Score: want ErrMissingData, got %v", err)
	}
	if _, err := uc.MaxAdvance(ctx, "partial"); !errors.Is(err, domain.ErrMissingData) {
		t.Fatalf("partial MaxAdvance: want ErrMissingData, got %v", err)
	}
	if _, err := uc.Score(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing Score: want ErrNotFound, got %v", err)
	}
	if _, err := uc.Metrics(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing Metrics: want ErrNotFound, got %v", err)
	}
	m, err := uc.Metrics(ctx, "good")
	if err != nil || m.PortfolioID != "good" {
		t.Fatalf("Metrics = %+v, %v", m, err)
	}
}

func TestEvaluate_DoesNotStore(t *testing.T) {
	dto, err := Evaluate([]domain.TransactionRecord{
		rec("A", "60000", 2024, 1),
		rec("B", "40000", 2024, 1),
		rec("A", "50000", 2024, 2),
		rec("B", "50000", 2024, 2),
	})
	if err != nil {
		t.Fatalf("Evaluate err: %v", err)
	}
	if dto.PortfolioID != "" || !dto.Eligible || !dto.MaxAdvance.Equal(d("140000")) {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if _, err := Evaluate(nil); !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("empty ledger: want ErrMalformedInput, got %v", err)
	}
}
