package spectator

import "errors"

var (
	// ErrUnreachable is returned when the endpoint does not answer or answers with a non-success status.
	ErrUnreachable = errors.New("spectator endpoint unreachable")

	// ErrMalformedResponse is returned when the body does not carry the five status fields.
	ErrMalformedResponse = errors.New("malformed spectator response")
)
