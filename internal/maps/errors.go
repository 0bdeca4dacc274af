// README: Typed error codes surfaced by the distance adapter.
package maps

// Error codes surfaced to pricing callers. Callers branch on the code, never
// on the message text.
const (
	CodeEmptyAddress            = "EMPTY_ADDRESS"
	CodeInvalidCoordinates      = "INVALID_COORDINATES"
	CodeDirectionsRequestFailed = "DIRECTIONS_REQUEST_FAILED"
	CodeNoRouteFound            = "NO_ROUTE_FOUND"
	CodeInvalidRouteResponse    = "INVALID_ROUTE_RESPONSE"
)

// RouteError is a distance-lookup failure with an HTTP-status-like code.
type RouteError struct {
	Code       string
	HTTPStatus int
	Message    string
	Err        error
}

func (e *RouteError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *RouteError) Unwrap() error { return e.Err }

// Is matches errors by code so sentinels like &RouteError{Code: CodeNoRouteFound}
// work with errors.Is.
func (e *RouteError) Is(target error) bool {
	t, ok := target.(*RouteError)
	return ok && t.Code == e.Code
}
