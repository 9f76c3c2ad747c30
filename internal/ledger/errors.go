package ledger

import "fmt"

// ValidationError reports input that was rejected before it could corrupt a
// record: a bad numeric value, an out-of-bounds item index, removing the last
// item, or deleting an unpaid record. The prior state is kept; nothing is
// clamped silently.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validation(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an operation referencing a record id absent from the
// collection.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("debt record %d not found", e.ID)
}
