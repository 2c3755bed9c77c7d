package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tryon-backend/internal/application/services"
	"tryon-backend/internal/application/usecases"
	"tryon-backend/internal/domain/valueobjects"
)

type TryOnHandler struct {
	tryOnUseCase        *usecases.TryOnUseCase
	measurementsUseCase *usecases.MeasurementsUseCase
	parameterService    *services.ParameterService
	maxBodyBytes        int64
}

type TryOnResponse struct {
	Success     bool                `json:"success"`
	ResultImage string              `json:"result_image"`
	Method      valueobjects.Method `json:"method"`
}

type MeasurementsResponse struct {
	Success      bool                      `json:"success"`
	Measurements valueobjects.Measurements `json:"measurements"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewTryOnHandler(
	tryOnUseCase *usecases.TryOnUseCase,
	measurementsUseCase *usecases.MeasurementsUseCase,
	parameterService *services.ParameterService,
	maxBodyBytes int64,
) *TryOnHandler {
	return &TryOnHandler{
		tryOnUseCase:        tryOnUseCase,
		measurementsUseCase: measurementsUseCase,
		parameterService:    parameterService,
		maxBodyBytes:        maxBodyBytes,
	}
}

func (h *TryOnHandler) HandleTryOn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	input, err := h.parameterService.ParseTryOn(r)
	if err != nil {
		h.handleError(w, "try-on", err)
		return
	}

	output, err := h.tryOnUseCase.Execute(r.Context(), *input)
	if err != nil {
		h.handleError(w, "try-on", err)
		return
	}

	h.sendJSON(w, http.StatusOK, TryOnResponse{
		Success:     true,
		ResultImage: output.ResultImage,
		Method:      output.Method,
	})
}

func (h *TryOnHandler) HandleMeasurements(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	input, err := h.parameterService.ParseMeasurements(r)
	if err != nil {
		h.handleError(w, "measurements", err)
		return
	}

	measurements, err := h.measurementsUseCase.Execute(r.Context(), *input)
	if err != nil {
		h.handleError(w, "measurements", err)
		return
	}

	h.sendJSON(w, http.StatusOK, MeasurementsResponse{
		Success:      true,
		Measurements: measurements,
	})
}

func (h *TryOnHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Message: "try-on backend is running",
	})
}

func (h *TryOnHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleError maps a failure to its status code: bad input is 400, an
// oversized body is 413, anything else is 500.
func (h *TryOnHandler) handleError(w http.ResponseWriter, operation string, err error) {
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytesErr):
		slog.Warn("request body too large", "operation", operation, "limit", maxBytesErr.Limit)
		h.sendError(w, "request body too large", http.StatusRequestEntityTooLarge)
	case errors.Is(err, valueobjects.ErrValidation):
		slog.Info("rejected request", "operation", operation, "error", err)
		h.sendError(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("request failed", "operation", operation, "error", err)
		h.sendError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *TryOnHandler) sendJSON(w http.ResponseWriter, statusCode int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		h.sendError(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.WriteHeader(statusCode)
	w.Write(data)
}

func (h *TryOnHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
