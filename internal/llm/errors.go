package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyChoices is returned when the endpoint answers 200 without any
// completion choice.
var ErrEmptyChoices = errors.New("completion response contained no choices")

// StatusError reports a non-200 answer from the completion endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error: %d - %s", e.StatusCode, e.Body)
}

// StatusCode extracts the HTTP status from err, or 0 if err is not a
// StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
