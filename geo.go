package daytrip

import (
	"math"

	"tidbyt.dev/daytrip/model"
)

// earthRadiusMeters is the mean radius used by the haversine formula
// below; this module does not need ellipsoidal precision.
const earthRadiusMeters = 6371000.0

// HaversineDistance returns the great-circle distance between a and b
// in meters.
func HaversineDistance(a, b model.Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}
