package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"revenue-advance/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type applyLoanReq struct {
	PortfolioID string          `json:"portfolio_id" validate:"required,hex32"`
	// accepts a JSON number or a numeric string
	LoanAmount decimal.Decimal `json:"loan_amount" validate:"dpos,dec2"`
}

func (h *LoanHandler) ApplyLoan(c echo.Context) error {
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	req.PortfolioID = strings.TrimSpace(req.PortfolioID)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dec, err := h.uc.Apply(c.Request().Context(), loan.ApplyInput{
		PortfolioID: req.PortfolioID,
		Amount:      req.LoanAmount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dec)
}

func (h *LoanHandler) LoanStatus(c echo.Context) error {
	dto, err := h.uc.Status(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
