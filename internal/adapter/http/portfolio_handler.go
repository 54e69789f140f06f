package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"revenue-advance/internal/adapter/csvin"
	"revenue-advance/internal/usecase/portfolio"
)

type PortfolioHandler struct {
	uc       *portfolio.Usecase
	maxBytes int64
}

func NewPortfolioHandler(uc *portfolio.Usecase, maxUploadBytes int64) *PortfolioHandler {
	return &PortfolioHandler{uc: uc, maxBytes: maxUploadBytes}
}

// Upload ingests a multipart "file" field holding the revenue ledger CSV.
func (h *PortfolioHandler) Upload(c echo.Context) error {
	req := c.Request()
	if h.maxBytes > 0 {
		if req.ContentLength > h.maxBytes {
			return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "upload too large"})
		}
		req.Body = http.MaxBytesReader(c.Response(), req.Body, h.maxBytes)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "upload too large"})
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or unreadable file upload"})
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".csv") {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file must be a .csv"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or unreadable file upload"})
	}
	defer f.Close()

	records, err := csvin.Read(f)
	if err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Ingest(req.Context(), records)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PortfolioHandler) Score(c echo.Context) error {
	dto, err := h.uc.Score(c.Request().Context(), c.Param("portfolio_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PortfolioHandler) MaxAdvance(c echo.Context) error {
	dto, err := h.uc.MaxAdvance(c.Request().Context(), c.Param("portfolio_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PortfolioHandler) Metrics(c echo.Context) error {
	dto, err := h.uc.Metrics(c.Request().Context(), c.Param("portfolio_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
