package http

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// apply-loan carries two JSON fields
const applyLoanBodyLimit = "64KB"

type Handlers struct {
	Health    *Handler
	Portfolio *PortfolioHandler
	Loan      *LoanHandler
}

// Register mounts every route; mw wraps the mutating ones. Body limits run ahead of mw,
// so nothing upstream of a handler buffers more than the route allows.
func Register(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	upload := mw
	if h.Portfolio != nil && h.Portfolio.maxBytes > 0 {
		limit := middleware.BodyLimit(strconv.FormatInt(h.Portfolio.maxBytes, 10) + "B")
		upload = append([]echo.MiddlewareFunc{limit}, mw...)
	}
	e.POST("/portfolio", h.Portfolio.Upload, upload...)
	e.GET("/portfolio/:portfolio_id/score", h.Portfolio.Score)
	e.GET("/portfolio/:portfolio_id/max-advance", h.Portfolio.MaxAdvance)
	e.GET("/portfolio/:portfolio_id/metrics", h.Portfolio.Metrics)

	apply := append([]echo.MiddlewareFunc{middleware.BodyLimit(applyLoanBodyLimit)}, mw...)
	e.POST("/apply-loan", h.Loan.ApplyLoan, apply...)
	e.GET("/loan-status/:loan_id", h.Loan.LoanStatus)
}
