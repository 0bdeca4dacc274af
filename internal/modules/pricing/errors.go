// README: Typed pricing errors with HTTP-status-like codes.
package pricing

// Error codes. Lookup misses are not errors; they surface as a nil BaseRate.
const (
	CodeInvalidPassengerCount      = "INVALID_PASSENGER_COUNT"
	CodeMissingTargetCoordinates   = "MISSING_TARGET_COORDINATES"
	CodeInvalidTargetCoordinates   = "INVALID_TARGET_COORDINATES"
	CodeOriginAddressRequired      = "ORIGIN_ADDRESS_REQUIRED"
	CodeDestinationAddressRequired = "DESTINATION_ADDRESS_REQUIRED"
	CodeUnsupportedDirection       = "UNSUPPORTED_DIRECTION"
)

// Error is a pricing failure the caller can branch on by code.
type Error struct {
	Code       string
	HTTPStatus int
	Message    string
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

// Is matches by code so errors.Is works against the package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidPassengerCount = &Error{Code: CodeInvalidPassengerCount, HTTPStatus: 400, Message: "passenger count must be a positive integer"}
	ErrOriginAddressRequired = &Error{Code: CodeOriginAddressRequired, HTTPStatus: 422, Message: "origin address or coordinates are required for distance pricing"}
	ErrDestinationAddressRequired = &Error{Code: CodeDestinationAddressRequired, HTTPStatus: 422, Message: "destination address or coordinates are required for distance pricing"}
	ErrUnsupportedDirection = &Error{Code: CodeUnsupportedDirection, HTTPStatus: 400, Message: "direction does not support distance pricing"}

	// Target errors indicate a defect in the authored rate data, not in the
	// request; they are logged at error severity for operator attention.
	ErrMissingTargetCoordinates = &Error{Code: CodeMissingTargetCoordinates, HTTPStatus: 500, Message: "distance rule target has no coordinates"}
	ErrInvalidTargetCoordinates = &Error{Code: CodeInvalidTargetCoordinates, HTTPStatus: 500, Message: "distance rule target coordinates are out of range"}
)
