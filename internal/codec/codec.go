// Package codec defines the compression boundary for JSON values.
//
// The compression backend is treated as a black box: a forward transform
// (Optimize) and an inverse transform (Restore) over decoded JSON values.
// Failures at this boundary are a closed taxonomy (*Error with a Kind)
// rather than arbitrary error shapes, so callers can match on what went
// wrong without probing messages.
package codec

import "fmt"

// Options controls the forward transform.
type Options struct {
	// Aggressive enables the more size-reducing strategy at the cost of
	// encode time.
	Aggressive bool `json:"aggressive"`

	// Unsafe permits transforms that are not guaranteed bit-for-bit
	// reversible, e.g. boolean-to-integer coercion.
	Unsafe bool `json:"unsafe"`
}

// Codec transforms decoded JSON values.
//
// Both methods must be deterministic for fixed inputs. Restore is expected
// to invert Optimize losslessly unless Options.Unsafe was set during the
// forward transform; that is a documented property of implementations, not
// something this boundary enforces.
type Codec interface {
	Optimize(value any, opts Options) (any, error)
	Restore(value any) (any, error)
}

// Kind identifies which transform failed.
type Kind int

const (
	// KindOptimize marks failures of the forward transform.
	KindOptimize Kind = iota + 1
	// KindRestore marks failures of the inverse transform.
	KindRestore
)

// String returns the display name for a kind.
func (k Kind) String() string {
	switch k {
	case KindOptimize:
		return "optimize"
	case KindRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// Error is a typed failure at the codec boundary.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// optimizeError wraps a failure of the forward transform.
func optimizeError(msg string, cause error) *Error {
	return &Error{Kind: KindOptimize, Msg: msg, Cause: cause}
}

// restoreError wraps a failure of the inverse transform.
func restoreError(msg string, cause error) *Error {
	return &Error{Kind: KindRestore, Msg: msg, Cause: cause}
}
