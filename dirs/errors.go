package dirs

import (
	"errors"
	"fmt"
)

// ErrInvalidDir is matched by every error returned from Parse and Render.
var ErrInvalidDir = errors.New("invalid directory entry")

// WrongBaseTypeError is returned when an entry is not a table.
type WrongBaseTypeError struct {
	Index int
}

func (e *WrongBaseTypeError) Error() string {
	return fmt.Sprintf("dirs[%d]: entry must be a table", e.Index)
}

func (e *WrongBaseTypeError) Is(target error) bool {
	return target == ErrInvalidDir
}

// MissingFieldError is returned when a required field is absent.
type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("dirs[%d]: missing field %q", e.Index, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrInvalidDir
}

// WrongFieldTypeError is returned when a field is present but does not hold
// a value of the expected type. Expected is either "string" or "oct-string".
type WrongFieldTypeError struct {
	Index    int
	Field    string
	Expected string
}

func (e *WrongFieldTypeError) Error() string {
	return fmt.Sprintf("dirs[%d]: field %q must be of type %s", e.Index, e.Field, e.Expected)
}

func (e *WrongFieldTypeError) Is(target error) bool {
	return target == ErrInvalidDir
}

// InvalidCapabilitiesError is returned when the packaging backend rejects
// the capability string of an entry.
type InvalidCapabilitiesError struct {
	Index int
	Err   error
}

func (e *InvalidCapabilitiesError) Error() string {
	return fmt.Sprintf("dirs[%d]: invalid capabilities: %v", e.Index, e.Err)
}

func (e *InvalidCapabilitiesError) Unwrap() error {
	return e.Err
}

func (e *InvalidCapabilitiesError) Is(target error) bool {
	return target == ErrInvalidDir
}
