package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/central-patrimonium/roster/pkg/core/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestGroupOnDuty_EvenParity(t *testing.T) {
	cfg := model.RotationConfig{ParityRule: model.ParityEven}

	assert.True(t, GroupOnDuty(model.GroupA, date(2026, time.March, 10), cfg), "group A works even days")
	assert.False(t, GroupOnDuty(model.GroupA, date(2026, time.March, 11), cfg))
	assert.False(t, GroupOnDuty(model.GroupB, date(2026, time.March, 10), cfg))
	assert.True(t, GroupOnDuty(model.GroupB, date(2026, time.March, 11), cfg), "group B works odd days")
}

func TestGroupOnDuty_OddParity(t *testing.T) {
	cfg := model.RotationConfig{ParityRule: model.ParityOdd}

	assert.False(t, GroupOnDuty(model.GroupA, date(2026, time.March, 10), cfg))
	assert.True(t, GroupOnDuty(model.GroupA, date(2026, time.March, 11), cfg))
}

func TestGroupOnDuty_ExactlyOneGroupPerDay(t *testing.T) {
	for _, cfg := range []model.RotationConfig{
		{ParityRule: model.ParityEven},
		{ParityRule: model.ParityOdd},
		{}, // missing config defaults to even
	} {
		for day := 1; day <= 31; day++ {
			d := date(2026, time.March, day)
			a := GroupOnDuty(model.GroupA, d, cfg)
			b := GroupOnDuty(model.GroupB, d, cfg)
			assert.NotEqual(t, a, b, "day %d parity %q", day, cfg.ParityRule)
		}
	}
}

func TestGroupOnDuty_UnassignedGroupNeverOnDuty(t *testing.T) {
	cfg := model.RotationConfig{ParityRule: model.ParityEven}

	assert.False(t, GroupOnDuty(model.GroupNone, date(2026, time.March, 10), cfg))
	assert.False(t, GroupOnDuty(model.GroupNone, date(2026, time.March, 11), cfg))
}

func TestGroupOnDuty_TolerantParityCompare(t *testing.T) {
	// stored rule may carry stray case or whitespace
	cfg := model.RotationConfig{ParityRule: "  PARES "}
	assert.True(t, GroupOnDuty(model.GroupA, date(2026, time.March, 10), cfg))

	cfg = model.RotationConfig{ParityRule: "Impares"}
	assert.False(t, GroupOnDuty(model.GroupA, date(2026, time.March, 10), cfg))
}

func TestGroupOnDuty_MissingConfigDefaultsToEven(t *testing.T) {
	cfg := model.RotationConfig{}

	assert.True(t, GroupOnDuty(model.GroupA, date(2026, time.March, 10), cfg))
	assert.False(t, GroupOnDuty(model.GroupA, date(2026, time.March, 11), cfg))
}
