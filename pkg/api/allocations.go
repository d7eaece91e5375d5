package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/central-patrimonium/roster/pkg/core/services"
)

type allocationRequest struct {
	OperatorID  string `json:"operatorId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Focus       string `json:"focus"`
	Leader      string `json:"leader"`
	Observation string `json:"observation"`
}

type allocationResponse struct {
	ID          string `json:"id"`
	OperatorID  string `json:"operatorId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Focus       string `json:"focus"`
	Leader      string `json:"leader,omitempty"`
	Observation string `json:"observation,omitempty"`
}

type allocationPeriodRequest struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Focus       string `json:"focus"`
	Observation string `json:"observation"`
}

type allocationPeriodResponse struct {
	ID           string `json:"id"`
	AllocationID string `json:"allocationId"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Focus        string `json:"focus"`
	Observation  string `json:"observation,omitempty"`
}

// CreateAllocation registers a manual allocation; field validation and
// overlap checks live in the service
func (h *Handler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	var req allocationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	allocation, err := services.AddAllocation(r.Context(), h.database, h.logger, services.NewAllocation{
		OperatorID:  req.OperatorID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Focus:       req.Focus,
		Leader:      req.Leader,
		Observation: req.Observation,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, allocationResponse{
		ID:          allocation.ID,
		OperatorID:  allocation.OperatorID,
		Date:        allocation.Date,
		StartTime:   allocation.StartTime,
		EndTime:     allocation.EndTime,
		Focus:       allocation.Focus,
		Leader:      allocation.Leader,
		Observation: allocation.Observation,
	})
}

// CreateAllocationPeriod appends a focus sub-period to a manual allocation
func (h *Handler) CreateAllocationPeriod(w http.ResponseWriter, r *http.Request) {
	allocationID := chi.URLParam(r, "allocationID")

	var req allocationPeriodRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	period, err := services.AddAllocationPeriod(r.Context(), h.database, h.logger, services.NewAllocationPeriod{
		AllocationID: allocationID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Focus:        req.Focus,
		Observation:  req.Observation,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, allocationPeriodResponse{
		ID:           period.ID,
		AllocationID: period.AllocationID,
		StartTime:    period.StartTime,
		EndTime:      period.EndTime,
		Focus:        period.Focus,
		Observation:  period.Observation,
	})
}

// DeleteAllocation removes a manual allocation and its sub-periods
func (h *Handler) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	allocationID := chi.URLParam(r, "allocationID")

	if err := h.database.DeleteAllocation(r.Context(), allocationID); err != nil {
		h.logger.Error("failed to delete allocation", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to delete allocation")
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}
