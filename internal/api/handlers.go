/*
handlers.go - HTTP handlers over the projection engine

ENDPOINTS:
  POST /api/v1/strategies/compute     Project one strategy (optionally per age)
  POST /api/v1/strategies/search      Rank every (months, type, level) candidate
  POST /api/v1/strategies/compare     Compare a strategy with what-if alternatives
  POST /api/v1/payments/reconstruct   Rebuild a schedule from payment history
  POST /api/v1/schedules              Generate a contribution schedule
  GET  /api/v1/tables                 Statutory tables in force
  GET  /healthz                       Liveness

ERROR HANDLING:
  - 400: malformed body, validation errors, expired re-entry window
  - 422: contribution month limit exceeded
  - 500: anything else
  Every body carries the request id.
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rgehrsitz/vcpgo/internal/calculation"
	"github.com/rgehrsitz/vcpgo/internal/compare"
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/internal/optimize"
	"github.com/rgehrsitz/vcpgo/internal/reconstruct"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = iota

// Handler holds the engine shared by all requests. The engine is read-only,
// so one handler serves concurrent requests.
type Handler struct {
	Engine        *calculation.CalculationEngine
	Reconstructor *reconstruct.Reconstructor
	Comparer      *compare.CompareEngine
}

// NewHandler creates a handler; a nil engine uses the built-in tables.
func NewHandler(engine *calculation.CalculationEngine) *Handler {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return &Handler{
		Engine:        engine,
		Reconstructor: reconstruct.NewReconstructor(engine),
		Comparer:      compare.NewCompareEngine(engine),
	}
}

// Health reports liveness and the law version in force.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, HealthResponse{Status: "ok", TablesVersion: h.Engine.Tables.Metadata.Version})
}

// Compute projects a single strategy.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if !decode(w, r, &req) {
		return
	}

	profile, err := req.Profile.ToDomain()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	strategy, err := req.Strategy.ToDomain(h.Engine.Tables)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	params := calculation.ProjectionParams{Profile: profile, Strategy: strategy, IncludeSchedule: req.IncludeSchedule}
	result, err := h.Engine.ComputeSingleStrategy(params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	result.StrategyType = req.Strategy.Type

	resp := ComputeResponse{Result: result}
	if req.AgeSensitivity {
		resp.AgeSensitivity, err = h.Engine.AgeSensitivity(params)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	h.Engine.Logger.Debugf("request %s: computed %s", RequestID(r.Context()), describeStrategy(strategy))
	writeData(w, r, http.StatusOK, resp)
}

// Search ranks the strategy space for a worker.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var body SearchRequest
	if !decode(w, r, &body) {
		return
	}

	req, opts, err := body.ToDomain()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := optimize.NewSolver(h.Engine, opts).Enumerate(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, result)
}

// Compare projects a strategy alongside template and transform alternatives.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var body CompareRequest
	if !decode(w, r, &body) {
		return
	}

	base, opts, err := body.ToDomain()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	set, err := h.Comparer.Compare(r.Context(), base, opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, set)
}

// Reconstruct rebuilds a schedule from payments and projects it.
func (h *Handler) Reconstruct(w http.ResponseWriter, r *http.Request) {
	var body ReconstructRequest
	if !decode(w, r, &body) {
		return
	}

	req, err := body.ToDomain(h.Engine.Tables)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	rec, err := h.Reconstructor.Reconstruct(req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, rec)
}

// Schedule generates the monthly schedule of a strategy.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var body ScheduleRequest
	if !decode(w, r, &body) {
		return
	}

	strategy, err := body.Strategy.ToDomain(h.Engine.Tables)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	months, err := h.Engine.BuildContributionSchedule(strategy)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, ScheduleResponse{Strategy: strategy, Months: months, Total: domain.TotalContributions(months)})
}

// Tables returns the statutory tables in force.
func (h *Handler) Tables(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, h.Engine.Tables)
}

// =============================================================================
// HELPERS
// =============================================================================

// RequestID returns the id assigned to the request, empty outside a request
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID reuses the caller's X-Request-ID or assigns a new uuid
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			RequestID: RequestID(r.Context()),
			Error:     "Invalid request body",
			Details:   err.Error(),
		})
		return false
	}
	return true
}

// statusFor maps engine errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrReentryExpired):
		return http.StatusBadRequest
	}
	var te *reconstruct.TransitionError
	if errors.As(err, &te) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := ErrorResponse{RequestID: RequestID(r.Context()), Error: http.StatusText(status), Details: err.Error()}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}
	if status == http.StatusInternalServerError {
		h.Engine.Logger.Errorf("request %s: %v", resp.RequestID, err)
	}
	writeJSON(w, status, resp)
}

func writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, status, Response{RequestID: RequestID(r.Context()), Data: data})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
