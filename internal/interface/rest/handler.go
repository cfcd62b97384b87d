package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"irregops-service/internal/domain/entity"
	"irregops-service/internal/domain/repository"
	"irregops-service/internal/usecase"
	"irregops-service/pkg/logger"
)

// DisruptionHandler exposes the extraction pipeline over HTTP
type DisruptionHandler struct {
	router     usecase.ModeRouter
	recordRepo repository.DisruptionRecordRepository
	logger     logger.Logger
}

// NewDisruptionHandler creates a new disruption handler. The record
// repository is optional; without it the recent-records endpoint
// answers 404.
func NewDisruptionHandler(router usecase.ModeRouter, recordRepo repository.DisruptionRecordRepository, logger logger.Logger) *DisruptionHandler {
	return &DisruptionHandler{
		router:     router,
		recordRepo: recordRepo,
		logger:     logger,
	}
}

// RegisterRoutes attaches the handler's routes to the mux
func (h *DisruptionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/disruptions/extract", h.Extract)
	mux.HandleFunc("/api/v1/disruptions/translate", h.Translate)
	mux.HandleFunc("/api/v1/disruptions/recent", h.Recent)
}

// Extract handles POST /api/v1/disruptions/extract
func (h *DisruptionHandler) Extract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req entity.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Mode == entity.ModeTranslate {
		writeError(w, http.StatusBadRequest, "translate mode is served at /api/v1/disruptions/translate")
		return
	}

	h.dispatch(w, r, &req)
}

// Translate handles POST /api/v1/disruptions/translate
func (h *DisruptionHandler) Translate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req entity.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Mode = entity.ModeTranslate

	h.dispatch(w, r, &req)
}

// Recent handles GET /api/v1/disruptions/recent
func (h *DisruptionHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.recordRepo == nil {
		writeError(w, http.StatusNotFound, "record store not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = parsed
	}

	// A flight filter narrows the listing to one flight, optionally one date.
	if flight := r.URL.Query().Get("flight"); flight != "" {
		records, err := h.recordRepo.FindByFlight(r.Context(), flight, r.URL.Query().Get("date"))
		if err != nil {
			h.logger.Error("Failed to fetch records by flight", "flight", flight, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to fetch records")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"records": records})
		return
	}

	records, err := h.recordRepo.FindRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to fetch recent records", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch records")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}

func (h *DisruptionHandler) dispatch(w http.ResponseWriter, r *http.Request, req *entity.ExtractRequest) {
	handler := h.router.GetHandler(req.Mode)
	if handler == nil {
		writeError(w, http.StatusBadRequest, "unknown mode: "+req.Mode)
		return
	}

	result, err := handler.Process(r.Context(), req)
	if err != nil {
		h.writeProcessError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeProcessError maps pipeline errors to HTTP statuses. Input
// validation is the caller's fault, exhaustion is the upstream's.
func (h *DisruptionHandler) writeProcessError(w http.ResponseWriter, err error) {
	var exhausted *entity.CompletionExhaustedError
	switch {
	case errors.Is(err, entity.ErrEmptyText):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrNoCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &exhausted):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error("Pipeline error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
