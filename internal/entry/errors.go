package entry

import "errors"

var (
	// ErrNotFound means no entry matches the requested id.
	ErrNotFound = errors.New("entry not found")
	// ErrForbidden means the caller is authenticated but not allowed to
	// touch this entry.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports missing or invalid caller input.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing or invalid field: " + e.Field
}
