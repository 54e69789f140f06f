package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"revenue-advance/internal/domain/loan"
	"revenue-advance/internal/domain/portfolio"
)

// statusFor maps domain sentinels to transport status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, portfolio.ErrNotFound), errors.Is(err, loan.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, portfolio.ErrMissingData), errors.Is(err, loan.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, portfolio.ErrMalformedInput), errors.Is(err, loan.ErrProcessing):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError keeps the cause of processing and internal failures out of the body.
func writeError(c echo.Context, err error) error {
	code := statusFor(err)
	msg := err.Error()
	switch {
	case errors.Is(err, loan.ErrProcessing):
		msg = loan.ErrProcessing.Error()
	case errors.Is(err, portfolio.ErrNotFound):
		msg = portfolio.ErrNotFound.Error()
	case errors.Is(err, loan.ErrNotFound):
		msg = loan.ErrNotFound.Error()
	case code == http.StatusInternalServerError:
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}
