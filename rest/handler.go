package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/domain"
	"github.com/Gthulhu/schedsim/errs"
	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/procfile"
	"go.uber.org/fx"
)

// BuildVersion is reported by GET /version and set with -ldflags at build time
var BuildVersion = "dev"

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SuccessResponse represents the success response structure
type SuccessResponse[T any] struct {
	Success   bool   `json:"success"`
	Data      *T     `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

func NewSuccessResponse[T any](data *T) SuccessResponse[T] {
	return SuccessResponse[T]{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

type EmptyResponse struct{}

type Params struct {
	fx.In
	Svc       domain.Service
	SimConfig config.SimulationConfig `optional:"true"`
}

func NewHandler(params Params) (*Handler, error) {
	return &Handler{
		Svc:    params.Svc,
		reader: procfile.Reader{MaxQueueID: params.SimConfig.MaxQueueID},
	}, nil
}

type Handler struct {
	Svc    domain.Service
	reader procfile.Reader
}

func (h *Handler) JSONResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		logger.Logger(ctx).Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) JSONBind(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(dst)
	if err != nil {
		return err
	}
	return nil
}

func (h *Handler) ErrorResponse(ctx context.Context, w http.ResponseWriter, status int, errMsg string, err error) {
	if err != nil {
		logger.Logger(ctx).Debug().Err(err).Msg(errMsg)
		errMsg = errMsg + ": " + err.Error()
	}
	resp := ErrorResponse{
		Success: false,
		Error:   errMsg,
	}
	h.JSONResponse(ctx, w, status, resp)
}

// HandleError writes err with the status it maps to
func (h *Handler) HandleError(ctx context.Context, w http.ResponseWriter, err error) {
	status := errs.StatusOf(err)
	if httpErr, ok := errs.IsHTTPStatusError(err); ok {
		h.ErrorResponse(ctx, w, status, httpErr.Message, httpErr.OriginalErr)
		return
	}
	if status >= http.StatusInternalServerError {
		logger.Logger(ctx).Error().Err(err).Msg("internal error")
		h.ErrorResponse(ctx, w, status, "Internal server error", nil)
		return
	}
	h.ErrorResponse(ctx, w, status, err.Error(), nil)
}

// Version godoc
// @Summary Get service version
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /version [get]
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message":   "CPU Scheduler Simulator",
		"version":   BuildVersion,
		"endpoints": "/api/v1/simulations (GET, POST), /api/v1/simulations/raw (POST), /api/v1/simulations/:id (GET, DELETE), /metrics (GET), /health (GET)",
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}

// HealthCheck godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "CPU Scheduler Simulator",
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}
