package columns

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned by every query and by Hide before the
	// first successful Configure.
	ErrNotConfigured = errors.New("column order has not been configured")

	// ErrDuplicateColumn matches any *DuplicateColumnError.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrUnknownColumn matches any *UnknownColumnError.
	ErrUnknownColumn = errors.New("unknown column")
)

// DuplicateColumnError is returned by Configure when the requested order
// names the same column more than once.
type DuplicateColumnError struct {
	Column Column
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("column %q is already configured", e.Column.Label())
}

func (e *DuplicateColumnError) Is(target error) bool {
	return target == ErrDuplicateColumn
}

// UnknownColumnError reports a column identity outside the fixed set. Name is
// set when the identity came from parsing a string.
type UnknownColumnError struct {
	Column Column
	Name   string
}

func (e *UnknownColumnError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown column %q", e.Name)
	}
	return fmt.Sprintf("unknown column %d", int(e.Column))
}

func (e *UnknownColumnError) Is(target error) bool {
	return target == ErrUnknownColumn
}
