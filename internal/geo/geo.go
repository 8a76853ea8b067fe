// Package geo computes great-circle distances between GPS coordinates.
// Pure functions, no state.
package geo

import "math"

const earthRadiusKM = 6371

// DistanceMeters returns the haversine distance in meters between two
// points given in decimal degrees, on a spherical-Earth approximation.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := radians(lat1)
	rlat2 := radians(lat2)
	dlat := radians(lat2 - lat1)
	dlon := radians(lon2 - lon1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKM * c * 1000
}

// ValidCoordinates reports whether both values are finite and inside the
// WGS84 degree ranges. The transport uses it to reject garbage payloads
// before they reach the validation pipeline.
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
