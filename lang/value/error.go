package value

import (
	"errors"
	"fmt"

	"github.com/mna/jymbol/lang/token"
)

// ErrorKind classifies the stage and nature of a failure raised anywhere in
// the reader/compiler/VM pipeline.
type ErrorKind int

const (
	Parse ErrorKind = iota
	Undefined
	Reserved
	Malformed
	Arity
	Type
	Compile
	Runtime
)

func (k ErrorKind) String() string {
	switch k {
	case Parse:
		return "parse"
	case Undefined:
		return "undefined"
	case Reserved:
		return "reserved"
	case Malformed:
		return "malformed"
	case Arity:
		return "arity"
	case Type:
		return "type"
	case Compile:
		return "compile"
	case Runtime:
		return "runtime"
	default:
		return "unknown"
	}
}

// EvalError is the single error type returned by any pipeline stage. Kind
// narrows the failure to one of the §7 taxonomy categories; Pos, when known,
// locates the failure in the original source.
type EvalError struct {
	Kind ErrorKind
	Msg  string
	Pos  token.Pos

	// ExpectedArity/GotArgs are populated for Kind == Arity, carrying the
	// structured arity-mismatch detail alongside the message.
	ExpectedArity ArityInfo
	GotArgs       int

	Wrapped error
}

// ArityInfo is the structured detail attached to an Arity EvalError so a host
// can build its own message instead of parsing ours.
type ArityInfo struct {
	Valid bool
	Arity Arity
}

func (e *EvalError) Error() string {
	if e.Pos.Unknown() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}

func (e *EvalError) Unwrap() error { return e.Wrapped }

// NewError builds a positionless EvalError of the given kind.
func NewError(kind ErrorKind, msg string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Msg: fmt.Sprintf(msg, args...)}
}

// NewErrorAt builds an EvalError located at pos.
func NewErrorAt(kind ErrorKind, pos token.Pos, msg string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Pos: pos, Msg: fmt.Sprintf(msg, args...)}
}

// NewArityError builds a structured Arity EvalError.
func NewArityError(pos token.Pos, expected Arity, got int) *EvalError {
	return &EvalError{
		Kind:          Arity,
		Pos:           pos,
		Msg:           fmt.Sprintf("expected %s argument(s), got %d", expected, got),
		ExpectedArity: ArityInfo{Valid: true, Arity: expected},
		GotArgs:       got,
	}
}

// KindOf reports the ErrorKind of err if it is (or wraps) an *EvalError, and
// whether one was found.
func KindOf(err error) (ErrorKind, bool) {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is (or wraps) an *EvalError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
