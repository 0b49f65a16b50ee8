package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardinalDirection(t *testing.T) {
	tests := map[float64]string{
		0:      "N",
		11.24:  "N",
		11.25:  "NNE",
		45:     "NE",
		56.255: "ENE",
		90:     "E",
		180:    "S",
		270:    "W",
		290:    "WNW",
		315:    "NW",
		330:    "NNW",
		348.75: "N",
		360:    "N",
	}
	for deg, want := range tests {
		got, err := CardinalDirection(deg)
		require.NoError(t, err, "deg=%v", deg)
		assert.Equal(t, want, got, "deg=%v", deg)
	}
}

func TestCardinalDirectionInvalid(t *testing.T) {
	for _, deg := range []float64{-1, 360.5, 720} {
		_, err := CardinalDirection(deg)
		assert.Error(t, err)
	}
}

func TestKilometresPerHour(t *testing.T) {
	assert.InDelta(t, 36.0, KilometresPerHour(10), 1e-9)
}
