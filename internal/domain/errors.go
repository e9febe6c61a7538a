package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict means the row changed underneath a conditional update.
	ErrConflict = errors.New("conflict")
)

// BusinessError is an expected failure whose message is safe to show to the
// admin user as-is.
type BusinessError struct {
	Msg string
}

func (e *BusinessError) Error() string { return e.Msg }

func Business(format string, args ...any) error {
	return &BusinessError{Msg: fmt.Sprintf(format, args...)}
}

// AsBusiness reports whether err carries a user-facing message.
func AsBusiness(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
