package mysql

import (
	"context"

	portfolioDomain "revenue-advance/internal/domain/portfolio"

	"gorm.io/gorm"
)

type PortfolioRepository struct{ db *gorm.DB }

func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository { return &PortfolioRepository{db: db} }

// Create inserts the portfolio row and its metrics (has-many association) in one statement batch.
func (r *PortfolioRepository) Create(ctx context.Context, p *portfolioDomain.Portfolio) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PortfolioRepository) GetByPortfolioID(ctx context.Context, portfolioID string) (*portfolioDomain.Portfolio, error) {
	var out portfolioDomain.Portfolio
	res := r.db.WithContext(ctx).
		Preload("Metrics", func(db *gorm.DB) *gorm.DB { return db.Order("year ASC, month ASC") }).
		Where("portfolio_id = ?", portfolioID).
		First(&out)
	return &out, res.Error
}
