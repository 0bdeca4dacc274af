// README: Google Maps driving-distance adapter used by the pricing engine.
package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"airporter/internal/types"
)

// RouteService handles interactions with the Google Maps Directions API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// DrivingDistance returns the driving distance and duration from origin to
// destination, preferring the shortest alternative when the API returns
// several routes. It assumes driving mode.
func (s *RouteService) DrivingDistance(ctx context.Context, origin, destination types.Waypoint) (types.Distance, error) {
	originStr, err := waypointString(origin)
	if err != nil {
		return types.Distance{}, err
	}
	destStr, err := waypointString(destination)
	if err != nil {
		return types.Distance{}, err
	}

	r := &maps.DirectionsRequest{
		Origin:       originStr,
		Destination:  destStr,
		Mode:         maps.TravelModeDriving,
		Alternatives: true,
		Language:     "en",
		Region:       "CA", // Bias results to Canada
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return types.Distance{}, &RouteError{
			Code:       CodeDirectionsRequestFailed,
			HTTPStatus: 502,
			Message:    "directions request failed",
			Err:        err,
		}
	}
	if len(routes) == 0 {
		return types.Distance{}, errNoRouteFound(originStr, destStr)
	}

	best, ok := shortestRoute(routes)
	if !ok {
		return types.Distance{}, &RouteError{
			Code:       CodeInvalidRouteResponse,
			HTTPStatus: 502,
			Message:    "directions response contained no usable route",
		}
	}
	return best, nil
}

// shortestRoute sums each route's legs and returns the one with the smallest
// total distance. Routes with no legs or a non-positive measured distance are
// skipped.
func shortestRoute(routes []maps.Route) (types.Distance, bool) {
	var best types.Distance
	found := false
	for _, route := range routes {
		if len(route.Legs) == 0 {
			continue
		}
		meters := 0
		minutes := 0.0
		usable := true
		for _, leg := range route.Legs {
			if leg.Distance.Meters <= 0 {
				usable = false
				break
			}
			meters += leg.Distance.Meters
			minutes += leg.Duration.Minutes()
		}
		if !usable {
			continue
		}
		km := float64(meters) / 1000.0
		if !found || km < best.Km {
			best = types.Distance{Km: km, Minutes: minutes}
			found = true
		}
	}
	return best, found
}

// waypointString renders a waypoint the way the Directions API expects:
// "lat,lng" when coordinates are present, the street address otherwise.
func waypointString(w types.Waypoint) (string, error) {
	if w.LatLng != nil {
		if !w.LatLng.Valid() {
			return "", &RouteError{
				Code:       CodeInvalidCoordinates,
				HTTPStatus: 400,
				Message:    fmt.Sprintf("invalid coordinates %v,%v", w.LatLng.Lat, w.LatLng.Lng),
			}
		}
		return fmt.Sprintf("%f,%f", w.LatLng.Lat, w.LatLng.Lng), nil
	}
	addr := strings.TrimSpace(w.Address)
	if addr == "" {
		return "", &RouteError{
			Code:       CodeEmptyAddress,
			HTTPStatus: 400,
			Message:    "waypoint has neither an address nor coordinates",
		}
	}
	return addr, nil
}

func errNoRouteFound(origin, destination string) *RouteError {
	return &RouteError{
		Code:       CodeNoRouteFound,
		HTTPStatus: 422,
		Message:    fmt.Sprintf("no driving route between %q and %q", origin, destination),
	}
}
