package geo

import "math"

// EarthRadiusKm is the sphere radius used by the Haversine formula.
const EarthRadiusKm = 6371.0

// Point is a geographic coordinate (WGS 84) in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Distance returns the great-circle distance between two points in
// kilometers, using the Haversine formula. Inputs are not validated;
// out-of-range coordinates produce odd distances, not errors.
func Distance(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Pow(math.Sin(dLng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
