package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/central-patrimonium/roster/pkg/core/model"
	"github.com/central-patrimonium/roster/pkg/core/resolver"
	"github.com/central-patrimonium/roster/pkg/core/services"
)

type boardEntry struct {
	OperatorID  string `json:"operatorId"`
	Name        string `json:"name"`
	Focus       string `json:"focus"`
	Observation string `json:"observation,omitempty"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Manual      bool   `json:"manual"`
	Color       string `json:"color,omitempty"`
	Status      string `json:"status"`
}

type boardResponse struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Leader      string       `json:"leader"`
	IRIS        []boardEntry `json:"iris"`
	Situator    []boardEntry `json:"situator"`
	Apoio       []boardEntry `json:"apoio"`
}

type weekendOperator struct {
	OperatorID string `json:"operatorId"`
	Name       string `json:"name"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Focus      string `json:"focus"`
	Manual     bool   `json:"manual"`
	Color      string `json:"color,omitempty"`
}

type weekendDay struct {
	Date      string            `json:"date"`
	Operators []weekendOperator `json:"operators"`
}

type weekendResponse struct {
	Saturday weekendDay `json:"saturday"`
	Sunday   weekendDay `json:"sunday"`
}

// GetBoard serves the resolved live panel for the current instant. The
// panel polls this endpoint; each call is an independent resolution pass.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	now := h.now().In(h.loc)

	view, err := services.GetBoard(r.Context(), h.database, h.logger, now)
	if err != nil {
		h.logger.Error("failed to resolve board", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to resolve board")
		return
	}

	h.respondJSON(w, http.StatusOK, boardResponse{
		GeneratedAt: view.GeneratedAt,
		Leader:      view.Leader,
		IRIS:        boardColumn(view.IRIS, view.Statuses),
		Situator:    boardColumn(view.Situator, view.Statuses),
		Apoio:       boardColumn(view.Apoio, view.Statuses),
	})
}

// GetLeader serves just the acting shift leader, for the panel header's
// lighter poll
func (h *Handler) GetLeader(w http.ResponseWriter, r *http.Request) {
	now := h.now().In(h.loc)

	cfgRec, err := h.database.GetRotationConfig(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch rotation config", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to fetch rotation config")
		return
	}

	cfg := model.RotationConfig{}
	if cfgRec != nil {
		cfg = model.RotationConfig{
			ParityRule:      model.ParityRule(cfgRec.ParityRule),
			DayLeaderA:      cfgRec.DayLeaderA,
			DayLeaderB:      cfgRec.DayLeaderB,
			NightLeader:     cfgRec.NightLeader,
			NightLeaderA:    cfgRec.NightLeaderA,
			NightLeaderB:    cfgRec.NightLeaderB,
			FacilityManager: cfgRec.FacilityManager,
		}
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"leader": resolver.ResolveLeader(now, cfg),
	})
}

// GetWeekend serves the upcoming Saturday and Sunday coverage preview
func (h *Handler) GetWeekend(w http.ResponseWriter, r *http.Request) {
	now := h.now().In(h.loc)

	view, err := services.GetWeekendSchedule(r.Context(), h.database, h.logger, now)
	if err != nil {
		h.logger.Error("failed to build weekend preview", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to build weekend preview")
		return
	}

	h.respondJSON(w, http.StatusOK, weekendResponse{
		Saturday: weekendDayResponse(view.Saturday),
		Sunday:   weekendDayResponse(view.Sunday),
	})
}

func boardColumn(entries []resolver.Entry, statuses map[string]string) []boardEntry {
	column := make([]boardEntry, 0, len(entries))
	for _, entry := range entries {
		column = append(column, boardEntry{
			OperatorID:  entry.OperatorID,
			Name:        entry.Name,
			Focus:       string(entry.Focus),
			Observation: entry.Observation,
			StartTime:   entry.StartTime,
			EndTime:     entry.EndTime,
			Manual:      entry.Manual,
			Color:       entry.Color,
			Status:      statuses[entry.OperatorID],
		})
	}
	return column
}

func weekendDayResponse(day services.WeekendDay) weekendDay {
	resp := weekendDay{
		Date:      day.Date.Format("2006-01-02"),
		Operators: make([]weekendOperator, 0, len(day.Operators)),
	}
	for _, op := range day.Operators {
		resp.Operators = append(resp.Operators, weekendOperator{
			OperatorID: op.OperatorID,
			Name:       op.Name,
			StartTime:  op.StartTime,
			EndTime:    op.EndTime,
			Focus:      string(op.Focus),
			Manual:     op.Manual,
			Color:      op.Color,
		})
	}
	return resp
}
