package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/welltyped-systems/binsolver-go/internal/domain/dto"
	"github.com/welltyped-systems/binsolver-go/internal/metrics"
	"github.com/welltyped-systems/binsolver-go/model"
)

const maxRequestBytes = 10 << 20

// Handler serves the BinSolver endpoints.
type Handler struct {
	packer  Packer
	latency time.Duration
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithPacker replaces the stub packer.
func WithPacker(p Packer) HandlerOption {
	return func(h *Handler) { h.packer = p }
}

// WithLatency delays every pack response, to exercise client timeouts.
func WithLatency(d time.Duration) HandlerOption {
	return func(h *Handler) { h.latency = d }
}

// NewHandler creates a Handler backed by OneItemPerBin unless overridden.
func NewHandler(opts ...HandlerOption) *Handler {
	h := &Handler{packer: OneItemPerBin{}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Health answers GET /health with the plain-text body "ok".
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Pack answers POST /v1/pack.
func (h *Handler) Pack(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRequestBytes))
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, dto.NewError(dto.ErrCodeFromStatus(http.StatusBadRequest), "Request body is not valid JSON"))
		return
	}

	req, err := model.ParsePackRequest(body)
	if err != nil {
		metrics.RecordStubPack("invalid", 0, 0)
		_ = c.Error(err)
		return
	}

	if err := h.wait(c.Request.Context()); err != nil {
		return
	}

	resp, err := h.packer.Pack(c.Request.Context(), req)
	var unplaceable *UnplaceableError
	var tooMany *TooManyUnitsError
	switch {
	case errors.As(err, &unplaceable):
		metrics.RecordStubPack("unplaceable", 0, req.TotalQuantity())
		c.JSON(http.StatusUnprocessableEntity, dto.NewError(dto.ErrCodeItemUnplaceable, unplaceable.Error()))
		return
	case errors.As(err, &tooMany):
		metrics.RecordStubPack("too_large", 0, 0)
		c.JSON(http.StatusUnprocessableEntity, dto.NewError(dto.ErrCodeFromStatus(http.StatusUnprocessableEntity), tooMany.Error()))
		return
	case err != nil:
		metrics.RecordStubPack("error", 0, 0)
		_ = c.Error(err)
		return
	}

	metrics.RecordStubPack("success", resp.Stats.Placed, resp.UnplacedCount())
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) wait(ctx context.Context) error {
	if h.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(h.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NotFound answers unknown routes with an error envelope.
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewError(dto.ErrCodeFromStatus(http.StatusNotFound), "Route not found"))
}
