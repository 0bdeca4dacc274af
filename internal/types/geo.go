// README: Shared identifier and geographic value objects.
package types

import "math"

type ID string

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Valid reports whether the point is finite and inside lat/lng bounds.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Waypoint identifies one side of a trip, either by street address or by
// coordinates. Exactly one of the two is required; coordinates win when both
// are set.
type Waypoint struct {
	Address string
	LatLng  *Point
}

// IsZero reports whether the waypoint carries neither an address nor coordinates.
func (w Waypoint) IsZero() bool {
	return w.Address == "" && w.LatLng == nil
}

// Distance is a measured driving distance and duration.
type Distance struct {
	Km      float64
	Minutes float64
}
