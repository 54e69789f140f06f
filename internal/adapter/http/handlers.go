package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves liveness. ping, when set, reports the store's reachability.
type Handler struct {
	ping func(ctx context.Context) error
}

func NewHandler(ping ...func(ctx context.Context) error) *Handler {
	h := &Handler{}
	if len(ping) > 0 {
		h.ping = ping[0]
	}
	return h
}

func (h *Handler) Health(c echo.Context) error {
	body := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if h.ping == nil {
		return c.JSON(http.StatusOK, body)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.ping(ctx); err != nil {
		body["status"] = "degraded"
		body["db"] = "unreachable"
		return c.JSON(http.StatusServiceUnavailable, body)
	}
	body["db"] = "ok"
	return c.JSON(http.StatusOK, body)
}
