package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "revenue-advance/internal/adapter/http"
	idemp "revenue-advance/internal/adapter/middleware"
	"revenue-advance/internal/adapter/repository/mysql"
	"revenue-advance/internal/config"
	"revenue-advance/internal/infrastructure/cache"
	"revenue-advance/internal/infrastructure/db"
	"revenue-advance/internal/infrastructure/logger"
	loanuc "revenue-advance/internal/usecase/loan"
	portfoliouc "revenue-advance/internal/usecase/portfolio"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	gdb, err := db.OpenGorm(cfg)
	if err != nil {
		zl.Fatal("open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if err := db.AutoMigrate(gdb); err != nil {
		zl.Fatal("auto-migrate", zap.Error(err))
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		zl.Fatal("sql db", zap.Error(err))
	}
	defer sqlDB.Close()

	tx := mysql.NewGormUoW(gdb)
	portfolioUC := portfoliouc.NewUsecase(mysql.NewPortfolioRepository(gdb), tx, zl.Named("portfolio"))
	loanUC := loanuc.NewUsecase(mysql.NewLoanRepository(gdb), tx, zl.Named("loan"))

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	var mutating []echo.MiddlewareFunc
	if cfg.IdempEnabled {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			zl.Fatal("open redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer rdb.Close()
		ttl := time.Duration(cfg.IdempTTLSecs) * time.Second
		mutating = append(mutating, idemp.IdempotencyMiddleware(rdb, ttl, zl.Named("idempotency")))
	}

	httpadp.Register(e, httpadp.Handlers{
		Health:    httpadp.NewHandler(sqlDB.PingContext),
		Portfolio: httpadp.NewPortfolioHandler(portfolioUC, cfg.MaxUploadBytes),
		Loan:      httpadp.NewLoanHandler(loanUC),
	}, mutating...)

	addr := ":" + cfg.AppPort
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.String("db_driver", cfg.DBDriver), zap.Bool("idempotency", cfg.IdempEnabled))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}
