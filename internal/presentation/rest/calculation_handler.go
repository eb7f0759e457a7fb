package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bibbank/vaddi/internal/application/dto"
	"github.com/bibbank/vaddi/internal/application/usecase"
	"github.com/bibbank/vaddi/internal/domain/model"
)

const maxBodyBytes = 64 << 10

// CalculationHandler exposes the calculator over JSON.
type CalculationHandler struct {
	calculate      *usecase.CalculateInterestUseCase
	getCalculation *usecase.GetCalculationUseCase
	logger         *slog.Logger
}

func NewCalculationHandler(
	calculate *usecase.CalculateInterestUseCase,
	getCalculation *usecase.GetCalculationUseCase,
	logger *slog.Logger,
) *CalculationHandler {
	return &CalculationHandler{
		calculate:      calculate,
		getCalculation: getCalculation,
		logger:         logger,
	}
}

// Calculate handles POST /api/v1/calculations.
func (h *CalculationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateInterestRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.calculate.Execute(r.Context(), req)
	if err != nil {
		h.writeUseCaseError(w, err)
		return
	}

	status := http.StatusCreated
	if resp.Cached {
		status = http.StatusOK
	}
	writeJSON(w, status, resp)
}

// Get handles GET /api/v1/calculations/{id}.
func (h *CalculationHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.getCalculation.Execute(r.Context(), dto.GetCalculationRequest{ID: chi.URLParam(r, "id")})
	if err != nil {
		h.writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CalculationHandler) writeUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrCalculationNotFound):
		writeError(w, http.StatusNotFound, "calculation not found")
	default:
		h.logger.Error("calculation request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
