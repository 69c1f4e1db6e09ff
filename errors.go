package mandel

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is wrapped by every error caused by malformed regions or arguments.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrResourceExhausted is wrapped when a lattice is too large to index or to hold in memory.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// ArgError describes a region field that failed to parse.
type ArgError struct {
	Region int    // 0-based region index in argument order
	Field  string // real_lower, real_upper, img_lower, img_upper, num or maxiter
	Value  string
	Err    error
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("region %d: field %s: cannot parse %q: %v", e.Region, e.Field, e.Value, e.Err)
}

func (e *ArgError) Unwrap() []error {
	return []error{ErrInvalidArgument, e.Err}
}
