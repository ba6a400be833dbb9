package abstract

import "fmt"

// ErrKind classifies a scanning error. Callers that need to branch on
// the kind of failure (retry vs give up vs try another backend) can
// use [errors.As] to recover it without depending on error text.
type ErrKind int

// Known error kinds.
const (
	ErrOther ErrKind = iota
	ErrNotFound
	ErrInvalidConfig
	ErrBackend
	ErrNotImplemented
	// ErrInvalidParam and ErrUnsupportedParam are ErrInvalidConfig's
	// two sub-cases, kept distinct so [ParamError] can report which
	// applies: the former means the value is malformed, the latter
	// that it's well-formed but the device doesn't support it.
	ErrInvalidParam
	ErrUnsupportedParam
)

// String returns a human-readable name for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrNotFound:
		return "not found"
	case ErrInvalidConfig:
		return "invalid config"
	case ErrBackend:
		return "backend error"
	case ErrNotImplemented:
		return "not implemented"
	case ErrInvalidParam:
		return "invalid parameter"
	case ErrUnsupportedParam:
		return "unsupported parameter"
	}
	return "error"
}

// Error is a typed scanning error, carrying a [ErrKind] and an
// optional wrapped cause.
type Error struct {
	Kind  ErrKind
	Msg   string
	Cause error
}

// NewError builds an [Error] of the given kind.
func NewError(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapError builds an [Error] of the given kind wrapping cause.
func WrapError(kind ErrKind, cause error) *Error {
	return &Error{Kind: kind, Msg: cause.Error(), Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Unwrap supports errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, so
// callers can write errors.Is(err, abstract.NewError(abstract.ErrNotFound, ""))
// as a kind check.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// ParamError reports that a single scan parameter is invalid or
// unsupported by the device, identified by field name and the
// offending value.
type ParamError struct {
	Kind  ErrKind // ErrInvalidParam or ErrUnsupportedParam
	Field string
	Value any
}

// Error implements the error interface.
func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s = %v", e.Kind, e.Field, e.Value)
}

// Is reports whether target is a *ParamError or a *Error with the
// matching Kind, so both errors.Is(err, abstract.NewError(abstract.ErrInvalidConfig, ""))
// and finer-grained field checks work.
func (e *ParamError) Is(target error) bool {
	switch t := target.(type) {
	case *ParamError:
		return t.Kind == e.Kind
	case *Error:
		return t.Kind == ErrInvalidConfig
	}
	return false
}
