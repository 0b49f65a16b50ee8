package weather

import (
	"fmt"
	"math"
)

var compassPoints = [...]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CardinalDirection converts a wind bearing in degrees [0, 360] to one of the
// 16 compass points.
func CardinalDirection(deg float64) (string, error) {
	if math.IsNaN(deg) || deg < 0 || deg > 360 {
		return "", fmt.Errorf("invalid wind direction: %v", deg)
	}
	idx := int(math.Floor((deg+11.25)/22.5)) % len(compassPoints)
	return compassPoints[idx], nil
}

// KilometresPerHour converts a wind speed from m/s.
func KilometresPerHour(ms float64) float64 {
	return ms * 3.6
}
