package geom

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by kerf's transform engine wraps
// exactly one of these, so callers can branch with errors.Is.
var (
	// ErrInvalidGeometry: a coordinate or derived quantity is not finite,
	// or an output invariant does not hold.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidScaleFactor: a scale factor is non-positive, not finite, or
	// a non-uniform combination the primitive cannot represent.
	ErrInvalidScaleFactor = errors.New("invalid scale factor")

	// ErrInvalidRotation: a rotation angle is not finite.
	ErrInvalidRotation = errors.New("invalid rotation")

	// ErrZeroVector: an axis, normal, direction or edge has zero length.
	ErrZeroVector = errors.New("zero vector")

	// ErrDegenerateGeometry: the result collapsed to a point or line where
	// a shape was required.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// Error describes a failed check on a named operation.
type Error struct {
	Op    string // operation, e.g. "circle.scale"
	Check string // failed check, e.g. "factor must be positive"
	Err   error  // one of the Err* kinds
}

func (e *Error) Error() string {
	if e.Check == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Check)
}

func (e *Error) Unwrap() error { return e.Err }

// Fail builds an *Error. The check is formatted with args.
func Fail(op string, kind error, check string, args ...any) error {
	if len(args) > 0 {
		check = fmt.Sprintf(check, args...)
	}
	return &Error{Op: op, Check: check, Err: kind}
}

// Reop returns err with its operation replaced by op when err is an
// *Error, so failures from shared helpers report the caller's operation.
// Other errors are returned unchanged.
func Reop(op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return &Error{Op: op, Check: e.Check, Err: e.Err}
	}
	return err
}

// KindOf returns the failure kind wrapped by err, or nil if err does not
// wrap any of them.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrInvalidGeometry,
		ErrInvalidScaleFactor,
		ErrInvalidRotation,
		ErrZeroVector,
		ErrDegenerateGeometry,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
