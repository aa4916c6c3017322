// Package geo provides great-circle distance helpers for WGS 84 coordinates.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used by Distance.
const EarthRadiusMeters = 6371 * 1000.0

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether p lies within [-90,90] x [-180,180] and is finite.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return false
	}

	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// DistanceTo returns the haversine distance from p to q in meters.
func (p Point) DistanceTo(q Point) float64 {
	return Distance(p.Lat, p.Lon, q.Lat, q.Lon)
}

// String formats p as "lat,lon" with six decimals.
func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}

// Distance returns the great-circle distance in meters between two coordinates.
// Inputs are not range-checked.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	// Clamp: rounding can push a a hair above 1 for antipodal points.
	if a > 1 {
		a = 1
	}

	return 2 * math.Asin(math.Sqrt(a)) * EarthRadiusMeters
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
