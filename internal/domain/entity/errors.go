// internal/domain/entity/errors.go
package entity

import (
	"errors"
	"fmt"
)

// Input validation errors abort the pipeline before any network call.
var (
	ErrEmptyText     = errors.New("notice text is required")
	ErrNoCredentials = errors.New("no API key or token source configured")
)

// CompletionExhaustedError reports that every (model, API version)
// candidate failed. It preserves the last observed upstream status and
// response body.
type CompletionExhaustedError struct {
	HTTPStatus int
	Body       string
}

func (e *CompletionExhaustedError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("completion service exhausted: last status %d: %s", e.HTTPStatus, e.Body)
	}
	return fmt.Sprintf("completion service exhausted: %s", e.Body)
}
