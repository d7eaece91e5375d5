package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/central-patrimonium/roster/pkg/db"
)

const testOperatorID = "cccccccc-dddd-4eee-8fff-000000000001"

// mockDatabase implements db.Database for handler tests
type mockDatabase struct {
	operators         []db.Operator
	periods           []db.FocusPeriod
	allocations       []db.ManualAllocation
	allocationPeriods map[string][]db.AllocationPeriod
	config            *db.RotationConfig
	statuses          []db.OperatorStatus

	savedConfig      *db.RotationConfig
	upsertedStatuses []*db.OperatorStatus
}

func (m *mockDatabase) GetOperators(ctx context.Context) ([]db.Operator, error) {
	return m.operators, nil
}

func (m *mockDatabase) GetActiveOperators(ctx context.Context) ([]db.Operator, error) {
	active := make([]db.Operator, 0, len(m.operators))
	for _, op := range m.operators {
		if op.Active {
			active = append(active, op)
		}
	}
	return active, nil
}

func (m *mockDatabase) InsertOperator(ctx context.Context, operator *db.Operator) error {
	m.operators = append(m.operators, *operator)
	return nil
}

func (m *mockDatabase) UpdateOperator(ctx context.Context, operator *db.Operator) error {
	return nil
}

func (m *mockDatabase) DeleteOperator(ctx context.Context, id string) error {
	return nil
}

func (m *mockDatabase) GetFocusPeriods(ctx context.Context) ([]db.FocusPeriod, error) {
	return m.periods, nil
}

func (m *mockDatabase) GetFocusPeriodsByOperator(ctx context.Context, operatorID string) ([]db.FocusPeriod, error) {
	var periods []db.FocusPeriod
	for _, p := range m.periods {
		if p.OperatorID == operatorID {
			periods = append(periods, p)
		}
	}
	return periods, nil
}

func (m *mockDatabase) InsertFocusPeriod(ctx context.Context, period *db.FocusPeriod) error {
	m.periods = append(m.periods, *period)
	return nil
}

func (m *mockDatabase) DeleteFocusPeriod(ctx context.Context, id string) error {
	return nil
}

func (m *mockDatabase) GetAllocationsByDates(ctx context.Context, dates []string) ([]db.ManualAllocation, error) {
	wanted := make(map[string]bool, len(dates))
	for _, date := range dates {
		wanted[date] = true
	}
	var matches []db.ManualAllocation
	for _, alloc := range m.allocations {
		if wanted[alloc.Date] {
			matches = append(matches, alloc)
		}
	}
	return matches, nil
}

func (m *mockDatabase) GetAllocationByID(ctx context.Context, id string) (*db.ManualAllocation, error) {
	for _, alloc := range m.allocations {
		if alloc.ID == id {
			found := alloc
			return &found, nil
		}
	}
	return nil, nil
}

func (m *mockDatabase) GetAllocationPeriods(ctx context.Context, allocationID string) ([]db.AllocationPeriod, error) {
	return m.allocationPeriods[allocationID], nil
}

func (m *mockDatabase) InsertAllocation(ctx context.Context, allocation *db.ManualAllocation) error {
	m.allocations = append(m.allocations, *allocation)
	return nil
}

func (m *mockDatabase) InsertAllocationPeriod(ctx context.Context, period *db.AllocationPeriod) error {
	if m.allocationPeriods == nil {
		m.allocationPeriods = make(map[string][]db.AllocationPeriod)
	}
	m.allocationPeriods[period.AllocationID] = append(m.allocationPeriods[period.AllocationID], *period)
	return nil
}

func (m *mockDatabase) DeleteAllocation(ctx context.Context, id string) error {
	return nil
}

func (m *mockDatabase) GetRotationConfig(ctx context.Context) (*db.RotationConfig, error) {
	return m.config, nil
}

func (m *mockDatabase) SaveRotationConfig(ctx context.Context, cfg *db.RotationConfig) error {
	m.savedConfig = cfg
	return nil
}

func (m *mockDatabase) GetStatuses(ctx context.Context) ([]db.OperatorStatus, error) {
	return m.statuses, nil
}

func (m *mockDatabase) UpsertStatus(ctx context.Context, status *db.OperatorStatus) error {
	m.upsertedStatuses = append(m.upsertedStatuses, status)
	return nil
}

// newTestHandler wires a handler around the mock with the clock pinned to
// an even Tuesday mid-morning
func newTestHandler(mock *mockDatabase) *Handler {
	h := NewHandler(mock, zap.NewNop(), time.UTC)
	h.now = func() time.Time {
		return time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	}
	h.RegisterRoutes()
	return h
}

func testFixtures() *mockDatabase {
	return &mockDatabase{
		operators: []db.Operator{
			{
				ID: testOperatorID, Name: "Marcos", Active: true,
				ShiftKind: "12x36_diurno", RotationGroup: "A",
				StartTime: "07:00", EndTime: "19:00", DefaultFocus: "IRIS",
			},
		},
		config: &db.RotationConfig{ParityRule: "pares", DayLeaderA: "Danilo"},
	}
}

func TestGetBoard(t *testing.T) {
	h := newTestHandler(testFixtures())

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/board", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp boardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Danilo", resp.Leader)
	require.Len(t, resp.Apoio, 1)
	assert.Equal(t, "Marcos", resp.Apoio[0].Name)
	assert.Equal(t, "Em operação", resp.Apoio[0].Status)
	assert.Empty(t, resp.IRIS)
}

func TestGetWeekend(t *testing.T) {
	h := newTestHandler(testFixtures())

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/weekend", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp weekendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Saturday March 14th is even: group A works
	assert.Equal(t, "2026-03-14", resp.Saturday.Date)
	require.Len(t, resp.Saturday.Operators, 1)
	assert.Equal(t, "Marcos", resp.Saturday.Operators[0].Name)
	assert.Empty(t, resp.Sunday.Operators)
}

func TestGetLeader(t *testing.T) {
	h := newTestHandler(testFixtures())

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/leader", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Danilo", resp["leader"])
}

func TestListStatuses_DefaultsToOffShift(t *testing.T) {
	mock := testFixtures()
	mock.operators = append(mock.operators, db.Operator{
		ID: "cccccccc-dddd-4eee-8fff-000000000002", Name: "Carla",
		Active: true, ShiftKind: "6x18", DefaultFocus: "Apoio",
	})
	mock.statuses = []db.OperatorStatus{
		{OperatorID: testOperatorID, Status: "Pausa", UpdatedAt: "2026-03-10T09:55:00Z"},
	}
	h := newTestHandler(mock)

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/statuses", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []operatorStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)

	byID := make(map[string]operatorStatus)
	for _, s := range resp {
		byID[s.OperatorID] = s
	}
	assert.Equal(t, "Pausa", byID[testOperatorID].Status)
	assert.Equal(t, "Fora de turno", byID["cccccccc-dddd-4eee-8fff-000000000002"].Status)
}

func TestCreateAllocation(t *testing.T) {
	mock := testFixtures()
	h := newTestHandler(mock)

	body := `{"operatorId":"` + testOperatorID + `","date":"2026-03-14","startTime":"10:00","endTime":"16:00","focus":"IRIS"}`
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/allocations", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp allocationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "IRIS", resp.Focus)
	assert.Len(t, mock.allocations, 1)
}

func TestCreateAllocation_BadInput(t *testing.T) {
	h := newTestHandler(testFixtures())

	body := `{"operatorId":"` + testOperatorID + `","date":"2026-03-14","startTime":"10:00","endTime":"16:00","focus":"Radar"}`
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/allocations", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown focus")
}

func TestSetStatus(t *testing.T) {
	mock := testFixtures()
	h := newTestHandler(mock)

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut,
		"/api/v1/operators/"+testOperatorID+"/status", strings.NewReader(`{"status":"Pausa"}`)))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, mock.upsertedStatuses, 1)
	assert.Equal(t, "Pausa", mock.upsertedStatuses[0].Status)
}

func TestSetStatus_UnknownStatus(t *testing.T) {
	h := newTestHandler(testFixtures())

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut,
		"/api/v1/operators/"+testOperatorID+"/status", strings.NewReader(`{"status":"Almoço"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateFocusPeriod(t *testing.T) {
	mock := testFixtures()
	h := newTestHandler(mock)

	body := `{"startTime":"09:00","endTime":"12:00","focus":"Situator"}`
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/v1/operators/"+testOperatorID+"/periods", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp focusPeriodResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, testOperatorID, resp.OperatorID)
	assert.Len(t, mock.periods, 1)
}

func TestCreateFocusPeriod_OutsideShiftWindow(t *testing.T) {
	mock := testFixtures()
	h := newTestHandler(mock)

	// Marcos works 07:00-19:00; a period past 19:00 is rejected
	body := `{"startTime":"18:00","endTime":"21:00","focus":"IRIS"}`
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/v1/operators/"+testOperatorID+"/periods", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "outside shift window")
	assert.Empty(t, mock.periods)
}

func TestCreateOperator(t *testing.T) {
	mock := testFixtures()
	h := newTestHandler(mock)

	body := `{"name":"Carla","shiftKind":"6x18","startTime":"08:00","endTime":"18:00","weekdays":["seg","ter","qua","qui","sex"],"defaultFocus":"Apoio"}`
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/operators", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp operatorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Active)
	assert.Equal(t, []string{"seg", "ter", "qua", "qui", "sex"}, resp.Weekdays)
	assert.Len(t, mock.operators, 2)
}

func TestCreateOperator_RotatingWithoutGroup(t *testing.T) {
	h := newTestHandler(testFixtures())

	body := `{"name":"Paula","shiftKind":"12x36_noturno","startTime":"19:00","endTime":"07:00","defaultFocus":"Situator"}`
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/operators", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "rotation group")
}

func TestRotationConfig_RoundTrip(t *testing.T) {
	mock := testFixtures()
	mock.config = nil
	h := newTestHandler(mock)

	// unset config serves the defaults
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rotation", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp rotationConfigPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pares", resp.ParityRule)

	// save normalizes the parity rule
	body := `{"parityRule":" Impares ","dayLeaderA":"Danilo","nightLeader":"Santana"}`
	rec = httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/rotation", strings.NewReader(body)))
	require.Equal(t, http.StatusNoContent, rec.Code)

	require.NotNil(t, mock.savedConfig)
	assert.Equal(t, "impares", mock.savedConfig.ParityRule)
	assert.Equal(t, "Santana", mock.savedConfig.NightLeader)
}

func TestSaveRotationConfig_InvalidParity(t *testing.T) {
	h := newTestHandler(testFixtures())

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/rotation",
		strings.NewReader(`{"parityRule":"weekly"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "pares or impares")
}
