package portfolio

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "revenue-advance/internal/domain/portfolio"
	"revenue-advance/internal/domain/uow"
	"revenue-advance/pkg/id"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
	log  *zap.Logger
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, uow: tx, log: log}
}

// build derives an unsaved portfolio from a full ledger snapshot.
func build(records []domain.TransactionRecord) (*domain.Portfolio, error) {
	agg, err := domain.Aggregate(records)
	if err != nil {
		return nil, err
	}
	metrics := domain.CalculateMetrics(agg)
	avgMRR, avgChurn := domain.Averages(metrics)
	return &domain.Portfolio{
		AvgMRR:       avgMRR,
		AvgChurnRate: avgChurn,
		Metrics:      metrics,
	}, nil
}

func summarize(p *domain.Portfolio) (*IngestDTO, error) {
	dto := &IngestDTO{
		PortfolioID:  p.PortfolioID,
		AvgMRR:       p.AvgMRR,
		AvgChurnRate: p.AvgChurnRate,
		Months:       len(p.Metrics),
		Message:      msgNotEligible,
	}
	maxAdvance, eligible, err := p.MaxAdvance()
	switch {
	case errors.Is(err, domain.ErrMissingData):
		dto.Message = msgMissingData
	case err != nil:
		return nil, err
	case eligible:
		dto.MaxAdvance, dto.Eligible, dto.Message = maxAdvance, true, msgEligible
	}
	return dto, nil
}

// Evaluate scores a ledger without storing it. The result has no portfolio id.
func Evaluate(records []domain.TransactionRecord) (*IngestDTO, error) {
	p, err := build(records)
	if err != nil {
		return nil, err
	}
	return summarize(p)
}

// Ingest builds the monthly metrics for a full ledger snapshot and stores them as a new portfolio.
func (u *Usecase) Ingest(ctx context.Context, records []domain.TransactionRecord) (*IngestDTO, error) {
	p, err := build(records)
	if err != nil {
		return nil, err
	}
	p.PortfolioID = id.NewID32()
	if err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Portfolios.Create(ctx, p)
	}); err != nil {
		u.log.Error("portfolio ingestion failed", zap.Int("records", len(records)), zap.Error(err))
		return nil, fmt.Errorf("store portfolio: %w", err)
	}

	dto, err := summarize(p)
	if err != nil {
		return nil, err
	}
	u.log.Info("portfolio ingested",
		zap.String("portfolio_id", p.PortfolioID),
		zap.Int("months", dto.Months),
		zap.Bool("eligible", dto.Eligible),
	)
	return dto, nil
}

func (u *Usecase) get(ctx context.Context, portfolioID string) (*domain.Portfolio, error) {
	p, err := u.repo.GetByPortfolioID(ctx, portfolioID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (u *Usecase) Score(ctx context.Context, portfolioID string) (*ScoreDTO, error) {
	p, err := u.get(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	score, err := p.Score()
	if err != nil {
		return nil, err
	}
	return &ScoreDTO{PortfolioID: p.PortfolioID, Score: score}, nil
}

func (u *Usecase) MaxAdvance(ctx context.Context, portfolioID string) (*AdvanceDTO, error) {
	p, err := u.get(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	maxAdvance, eligible, err := p.MaxAdvance()
	if err != nil {
		return nil, err
	}
	return &AdvanceDTO{PortfolioID: p.PortfolioID, MaxAdvance: maxAdvance, Eligible: eligible}, nil
}

func (u *Usecase) Metrics(ctx context.Context, portfolioID string) (*MetricsDTO, error) {
	p, err := u.get(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	return &MetricsDTO{
		PortfolioID:  p.PortfolioID,
		AvgMRR:       p.AvgMRR,
		AvgChurnRate: p.AvgChurnRate,
		Metrics:      p.Metrics,
	}, nil
}
