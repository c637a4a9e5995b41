package aggregate

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidInputError reports a missing or malformed caller-supplied
// identifier. It is always raised before any remote fetch.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// IsInvalidInput reports whether err is an *InvalidInputError.
func IsInvalidInput(err error) bool {
	var inputErr *InvalidInputError
	return errors.As(err, &inputErr)
}

// requireID validates a required identifier argument.
func requireID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &InvalidInputError{Field: field, Reason: "is required"}
	}
	return nil
}
