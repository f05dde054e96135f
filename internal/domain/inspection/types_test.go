//go:build unit

package inspection_test

import (
	"testing"

	"loanerdesk/internal/domain/inspection"
	"loanerdesk/internal/domain/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		rec, err := inspection.NewRecord(inspection.TypePreCheck, 12040, vehicle.FuelThreeQuarters, "scratch on rear bumper", "SA-001")
		require.NoError(t, err)
		assert.Equal(t, inspection.TypePreCheck, rec.Type)
		assert.Equal(t, int32(12040), rec.Odometer)
		assert.Equal(t, vehicle.FuelThreeQuarters, rec.FuelLevel)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := inspection.NewRecord("mid-check", 100, vehicle.FuelFull, "", "")
		assert.ErrorIs(t, err, inspection.ErrInvalidType)
	})

	t.Run("negative odometer", func(t *testing.T) {
		_, err := inspection.NewRecord(inspection.TypePostCheck, -1, vehicle.FuelFull, "", "")
		assert.ErrorIs(t, err, inspection.ErrInvalidOdometer)
	})

	t.Run("invalid fuel level", func(t *testing.T) {
		_, err := inspection.NewRecord(inspection.TypePostCheck, 100, "7/8", "", "")
		assert.ErrorIs(t, err, vehicle.ErrInvalidFuelLevel)
	})
}

func TestParseFuelLevel(t *testing.T) {
	for _, s := range []string{"full", "3/4", "half", "1/4", "empty"} {
		parsed, err := vehicle.ParseFuelLevel(s)
		require.NoError(t, err)
		assert.Equal(t, s, parsed.String())
	}

	_, err := vehicle.ParseFuelLevel("FULL")
	assert.ErrorIs(t, err, vehicle.ErrInvalidFuelLevel)
}
