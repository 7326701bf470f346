package geo

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371

func degToRad(d float64) float64 {
	return d * (math.Pi / 180)
}

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLng := degToRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(lat1))*math.Cos(degToRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// FormatDistance renders a distance for marker previews: metres below 1 km,
// otherwise km with one decimal.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km", km)
}
