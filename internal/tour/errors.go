package tour

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyItinerary is returned when the generator answers with zero locations.
var ErrEmptyItinerary = errors.New("tour: itinerary has no stops")

// TransportError covers every failure to obtain response bytes: bad endpoint,
// DNS, connection reset, timeout.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return "tour: transport: " + e.Message
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that is neither a tour nor a
// validation rejection.
type DecodeError struct {
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	return "tour: decode: " + e.Message
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationRejected is the generator refusing the request with a detail list.
type ValidationRejected struct {
	Issues []ValidationIssue
}

func (e *ValidationRejected) Error() string {
	return "tour: request rejected: " + e.Summary()
}

// Summary joins the issue messages, each followed by its location path.
func (e *ValidationRejected) Summary() string {
	if e == nil || len(e.Issues) == 0 {
		return "no details"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return strings.Join(parts, "; ")
}

// Describe turns any pipeline error into the text shown on the error screen.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var (
		transport *TransportError
		decode    *DecodeError
		rejected  *ValidationRejected
	)
	switch {
	case errors.As(err, &rejected):
		return fmt.Sprintf("The tour service rejected the request: %s", rejected.Summary())
	case errors.As(err, &transport):
		return fmt.Sprintf("Could not reach the tour service: %s", transport.Message)
	case errors.As(err, &decode):
		return fmt.Sprintf("The tour service sent an unreadable response: %s", decode.Message)
	case errors.Is(err, ErrEmptyItinerary):
		return "The tour service returned a tour with no stops."
	default:
		return err.Error()
	}
}
