package utils

import "math"

// Haversine returns the great-circle distance in kilometres between two
// points given in decimal degrees. NaN inputs yield NaN.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// WithinRadius reports whether the point lies within radiusKm of the center.
// Any NaN involved makes the check fail.
func WithinRadius(centerLat, centerLng, lat, lng, radiusKm float64) bool {
	d := Haversine(centerLat, centerLng, lat, lng)
	if math.IsNaN(d) {
		return false
	}
	return d <= radiusKm
}

// ValidLatLng reports whether lat/lng are finite and inside the WGS84 ranges.
func ValidLatLng(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
