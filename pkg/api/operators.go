package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/central-patrimonium/roster/pkg/core/model"
	"github.com/central-patrimonium/roster/pkg/core/services"
	"github.com/central-patrimonium/roster/pkg/db"
)

type operatorRequest struct {
	Name          string   `json:"name" validate:"required"`
	Active        *bool    `json:"active"`
	ShiftKind     string   `json:"shiftKind" validate:"required"`
	RotationGroup string   `json:"rotationGroup" validate:"omitempty,oneof=A B"`
	StartTime     string   `json:"startTime" validate:"required,datetime=15:04"`
	EndTime       string   `json:"endTime" validate:"required,datetime=15:04"`
	SaturdayStart string   `json:"saturdayStart" validate:"omitempty,datetime=15:04"`
	SaturdayEnd   string   `json:"saturdayEnd" validate:"omitempty,datetime=15:04"`
	SundayStart   string   `json:"sundayStart" validate:"omitempty,datetime=15:04"`
	SundayEnd     string   `json:"sundayEnd" validate:"omitempty,datetime=15:04"`
	Weekdays      []string `json:"weekdays" validate:"dive,oneof=seg ter qua qui sex sab dom"`
	DefaultFocus  string   `json:"defaultFocus" validate:"required"`
	Color         string   `json:"color"`
}

type operatorResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Active        bool     `json:"active"`
	ShiftKind     string   `json:"shiftKind"`
	RotationGroup string   `json:"rotationGroup,omitempty"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	SaturdayStart string   `json:"saturdayStart,omitempty"`
	SaturdayEnd   string   `json:"saturdayEnd,omitempty"`
	SundayStart   string   `json:"sundayStart,omitempty"`
	SundayEnd     string   `json:"sundayEnd,omitempty"`
	Weekdays      []string `json:"weekdays,omitempty"`
	DefaultFocus  string   `json:"defaultFocus"`
	Color         string   `json:"color,omitempty"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type focusPeriodRequest struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Focus       string `json:"focus"`
	Observation string `json:"observation"`
}

type focusPeriodResponse struct {
	ID          string `json:"id"`
	OperatorID  string `json:"operatorId"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Focus       string `json:"focus"`
	Observation string `json:"observation,omitempty"`
	Position    int    `json:"position"`
}

// ListOperators serves every operator on the roster, active or not
func (h *Handler) ListOperators(w http.ResponseWriter, r *http.Request) {
	operators, err := h.database.GetOperators(r.Context())
	if err != nil {
		h.logger.Error("failed to list operators", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list operators")
		return
	}

	resp := make([]operatorResponse, 0, len(operators))
	for _, op := range operators {
		resp = append(resp, operatorToResponse(op))
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// CreateOperator registers a new operator
func (h *Handler) CreateOperator(w http.ResponseWriter, r *http.Request) {
	record, ok := h.operatorFromRequest(w, r, uuid.New().String())
	if !ok {
		return
	}

	if err := h.database.InsertOperator(r.Context(), record); err != nil {
		h.logger.Error("failed to insert operator", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to insert operator")
		return
	}

	h.logger.Info("Operator created", zap.String("operator_id", record.ID), zap.String("name", record.Name))
	h.respondJSON(w, http.StatusCreated, operatorToResponse(*record))
}

// UpdateOperator replaces an operator's roster fields
func (h *Handler) UpdateOperator(w http.ResponseWriter, r *http.Request) {
	operatorID := chi.URLParam(r, "operatorID")

	record, ok := h.operatorFromRequest(w, r, operatorID)
	if !ok {
		return
	}

	if err := h.database.UpdateOperator(r.Context(), record); err != nil {
		h.logger.Error("failed to update operator", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to update operator")
		return
	}

	h.respondJSON(w, http.StatusOK, operatorToResponse(*record))
}

// DeleteOperator removes an operator; their periods, allocations, and
// status go with them
func (h *Handler) DeleteOperator(w http.ResponseWriter, r *http.Request) {
	operatorID := chi.URLParam(r, "operatorID")

	if err := h.database.DeleteOperator(r.Context(), operatorID); err != nil {
		h.logger.Error("failed to delete operator", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to delete operator")
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

// SetStatus records a manually-set live status for one operator
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	operatorID := chi.URLParam(r, "operatorID")

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := services.SetStatus(r.Context(), h.database, h.logger, operatorID, req.Status, h.now()); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

type operatorStatus struct {
	OperatorID string `json:"operatorId"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// ListStatuses serves the live status of every operator on the roster.
// Operators nobody has set a status for read as off shift.
func (h *Handler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	operators, err := h.database.GetOperators(r.Context())
	if err != nil {
		h.logger.Error("failed to list operators", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list statuses")
		return
	}
	statuses, err := h.database.GetStatuses(r.Context())
	if err != nil {
		h.logger.Error("failed to list statuses", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list statuses")
		return
	}

	stored := make(map[string]db.OperatorStatus, len(statuses))
	for _, s := range statuses {
		stored[s.OperatorID] = s
	}

	resp := make([]operatorStatus, 0, len(operators))
	for _, op := range operators {
		entry := operatorStatus{
			OperatorID: op.ID,
			Name:       op.Name,
			Status:     string(model.StatusOffShift),
		}
		if s, ok := stored[op.ID]; ok {
			entry.Status = s.Status
			entry.UpdatedAt = s.UpdatedAt
		}
		resp = append(resp, entry)
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// ListFocusPeriods serves one operator's standing focus periods in stored
// order
func (h *Handler) ListFocusPeriods(w http.ResponseWriter, r *http.Request) {
	operatorID := chi.URLParam(r, "operatorID")

	periods, err := h.database.GetFocusPeriodsByOperator(r.Context(), operatorID)
	if err != nil {
		h.logger.Error("failed to list focus periods", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list focus periods")
		return
	}

	resp := make([]focusPeriodResponse, 0, len(periods))
	for _, p := range periods {
		resp = append(resp, focusPeriodResponse{
			ID:          p.ID,
			OperatorID:  p.OperatorID,
			StartTime:   p.StartTime,
			EndTime:     p.EndTime,
			Focus:       p.Focus,
			Observation: p.Observation,
			Position:    p.Position,
		})
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// CreateFocusPeriod appends a standing focus period to one operator's
// stored order; window and overlap checks live in the service
func (h *Handler) CreateFocusPeriod(w http.ResponseWriter, r *http.Request) {
	operatorID := chi.URLParam(r, "operatorID")

	var req focusPeriodRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	period, err := services.AddFocusPeriod(r.Context(), h.database, h.logger, services.NewFocusPeriod{
		OperatorID:  operatorID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Focus:       req.Focus,
		Observation: req.Observation,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, focusPeriodResponse{
		ID:          period.ID,
		OperatorID:  period.OperatorID,
		StartTime:   period.StartTime,
		EndTime:     period.EndTime,
		Focus:       period.Focus,
		Observation: period.Observation,
	})
}

// DeleteFocusPeriod removes one standing focus period
func (h *Handler) DeleteFocusPeriod(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")

	if err := h.database.DeleteFocusPeriod(r.Context(), periodID); err != nil {
		h.logger.Error("failed to delete focus period", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to delete focus period")
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

// operatorFromRequest decodes, validates, and converts the operator
// payload. A false return means the response was already written.
func (h *Handler) operatorFromRequest(w http.ResponseWriter, r *http.Request, id string) (*db.Operator, bool) {
	var req operatorRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	kind := model.ShiftKind(req.ShiftKind)
	if !kind.IsValid() {
		h.respondError(w, http.StatusBadRequest, "unknown shift kind "+req.ShiftKind)
		return nil, false
	}
	focus := model.Focus(strings.TrimSpace(req.DefaultFocus))
	if !focus.IsValid() {
		h.respondError(w, http.StatusBadRequest, "unknown focus "+req.DefaultFocus)
		return nil, false
	}
	if kind.IsRotating() && req.RotationGroup == "" {
		h.respondError(w, http.StatusBadRequest, "rotating shift kinds require a rotation group")
		return nil, false
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return &db.Operator{
		ID:            id,
		Name:          req.Name,
		Active:        active,
		ShiftKind:     string(kind),
		RotationGroup: req.RotationGroup,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		SaturdayStart: req.SaturdayStart,
		SaturdayEnd:   req.SaturdayEnd,
		SundayStart:   req.SundayStart,
		SundayEnd:     req.SundayEnd,
		Weekdays:      strings.Join(req.Weekdays, ","),
		DefaultFocus:  string(focus),
		Color:         req.Color,
	}, true
}

func operatorToResponse(op db.Operator) operatorResponse {
	var weekdays []string
	if op.Weekdays != "" {
		weekdays = strings.Split(op.Weekdays, ",")
	}
	return operatorResponse{
		ID:            op.ID,
		Name:          op.Name,
		Active:        op.Active,
		ShiftKind:     op.ShiftKind,
		RotationGroup: op.RotationGroup,
		StartTime:     op.StartTime,
		EndTime:       op.EndTime,
		SaturdayStart: op.SaturdayStart,
		SaturdayEnd:   op.SaturdayEnd,
		SundayStart:   op.SundayStart,
		SundayEnd:     op.SundayEnd,
		Weekdays:      weekdays,
		DefaultFocus:  op.DefaultFocus,
		Color:         op.Color,
	}
}
