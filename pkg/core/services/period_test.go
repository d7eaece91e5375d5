package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/central-patrimonium/roster/pkg/db"
)

const (
	periodOpDay   = "bbbbbbbb-cccc-4ddd-8eee-ffffffffff01"
	periodOpNight = "bbbbbbbb-cccc-4ddd-8eee-ffffffffff02"
)

func periodFixtures() *mockDatabase {
	return &mockDatabase{
		operators: []db.Operator{
			{
				ID: periodOpDay, Name: "Marcos", Active: true,
				ShiftKind: "12x36_diurno", RotationGroup: "A",
				StartTime: "07:00", EndTime: "19:00", DefaultFocus: "IRIS",
			},
			{
				ID: periodOpNight, Name: "Paula", Active: true,
				ShiftKind: "12x36_noturno", RotationGroup: "B",
				StartTime: "19:00", EndTime: "07:00", DefaultFocus: "Situator",
			},
		},
	}
}

func TestAddFocusPeriod(t *testing.T) {
	mock := periodFixtures()
	logger := zap.NewNop()
	ctx := context.Background()

	period, err := AddFocusPeriod(ctx, mock, logger, NewFocusPeriod{
		OperatorID:  periodOpDay,
		StartTime:   "09:00",
		EndTime:     "12:00",
		Focus:       " situator ",
		Observation: "reforço da manhã",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, period.ID)
	assert.Equal(t, "Situator", period.Focus)
	assert.Equal(t, "reforço da manhã", period.Observation)

	require.Len(t, mock.periods, 1)
	assert.Equal(t, *period, mock.periods[0])
}

func TestAddFocusPeriod_InvalidInput(t *testing.T) {
	mock := periodFixtures()
	logger := zap.NewNop()
	ctx := context.Background()

	tests := []struct {
		name    string
		input   NewFocusPeriod
		wantErr string
	}{
		{
			name: "bad time",
			input: NewFocusPeriod{
				OperatorID: periodOpDay,
				StartTime:  "9h00", EndTime: "12:00", Focus: "IRIS",
			},
			wantErr: "validation failed",
		},
		{
			name: "unknown focus",
			input: NewFocusPeriod{
				OperatorID: periodOpDay,
				StartTime:  "09:00", EndTime: "12:00", Focus: "Radar",
			},
			wantErr: "unknown focus",
		},
		{
			name: "zero-length window",
			input: NewFocusPeriod{
				OperatorID: periodOpDay,
				StartTime:  "09:00", EndTime: "09:00", Focus: "IRIS",
			},
			wantErr: "zero length",
		},
		{
			name: "outside shift window",
			input: NewFocusPeriod{
				OperatorID: periodOpDay,
				StartTime:  "18:00", EndTime: "21:00", Focus: "IRIS",
			},
			wantErr: "outside shift window",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AddFocusPeriod(ctx, mock, logger, tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, mock.periods)
		})
	}
}

func TestAddFocusPeriod_OvernightShift(t *testing.T) {
	mock := periodFixtures()
	logger := zap.NewNop()
	ctx := context.Background()

	// a post-midnight period sits inside the 19:00-07:00 window
	_, err := AddFocusPeriod(ctx, mock, logger, NewFocusPeriod{
		OperatorID: periodOpNight,
		StartTime:  "00:00",
		EndTime:    "04:00",
		Focus:      "IRIS",
	})
	assert.NoError(t, err)

	// but one reaching past the shift end does not
	_, err = AddFocusPeriod(ctx, mock, logger, NewFocusPeriod{
		OperatorID: periodOpNight,
		StartTime:  "06:00",
		EndTime:    "09:00",
		Focus:      "IRIS",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside shift window")
}

func TestAddFocusPeriod_RejectsSiblingOverlap(t *testing.T) {
	mock := periodFixtures()
	mock.periods = []db.FocusPeriod{
		{ID: "fp1", OperatorID: periodOpDay, StartTime: "10:00", EndTime: "13:00", Focus: "IRIS", Position: 1},
	}
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := AddFocusPeriod(ctx, mock, logger, NewFocusPeriod{
		OperatorID: periodOpDay,
		StartTime:  "12:00",
		EndTime:    "15:00",
		Focus:      "Situator",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlaps existing period")

	// adjacent periods are fine: the end minute is exclusive
	_, err = AddFocusPeriod(ctx, mock, logger, NewFocusPeriod{
		OperatorID: periodOpDay,
		StartTime:  "13:00",
		EndTime:    "15:00",
		Focus:      "Situator",
	})
	assert.NoError(t, err)
}

func TestAddFocusPeriod_UnknownOperator(t *testing.T) {
	mock := periodFixtures()
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := AddFocusPeriod(ctx, mock, logger, NewFocusPeriod{
		OperatorID: "bbbbbbbb-cccc-4ddd-8eee-ffffffffff99",
		StartTime:  "09:00",
		EndTime:    "12:00",
		Focus:      "IRIS",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
