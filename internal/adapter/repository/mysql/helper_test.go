package mysql

import (
	"testing"

	loanDomain "revenue-advance/internal/domain/loan"
	portfolioDomain "revenue-advance/internal/domain/portfolio"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB. The domain models carry no MySQL-only column types,
// so they migrate as-is.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every :memory: connection is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&portfolioDomain.Portfolio{}, &portfolioDomain.MonthlyMetric{}, &loanDomain.Loan{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
