package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is returned for set names that cannot be used as blob names.
	ErrInvalidName = errors.New("persistence: invalid set name")
)

// ErrCorrupt indicates a stored set that cannot be decoded.
//
// The decode error is available through errors.Unwrap.
type ErrCorrupt struct {
	Name  string
	cause error
}

func (e *ErrCorrupt) Error() string {
	return fmt.Sprintf("persistence: set %q is corrupt: %v", e.Name, e.cause)
}

func (e *ErrCorrupt) Unwrap() error { return e.cause }

const maxNameLen = 128

// validateName accepts names made of letters, digits, '.', '_' and '-' that do
// not start with a dot.
func validateName(name string) error {
	if name == "" || len(name) > maxNameLen || name[0] == '.' {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == '-':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}
