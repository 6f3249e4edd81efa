// Package errs defines the error kinds shared by the store, the document
// builder, the signing collaborators and the pipeline.
//
// Callers should branch on Kind (errors.Is against the sentinels, or IsKind)
// rather than on error strings.
package errs

import "errors"

// Kind is a stable category for programmatic error handling.
type Kind string

const (
	KindCapacityExceeded Kind = "CapacityExceeded"
	KindRenderOverflow   Kind = "RenderOverflow"
	KindRender           Kind = "Render"
	KindParse            Kind = "Parse"
	KindSign             Kind = "SignFailure"
	KindHash             Kind = "HashFailure"
	KindVerify           Kind = "VerifyFailure"
	KindSink             Kind = "SinkFailure"
	KindKey              Kind = "Key"
	KindConfig           Kind = "Config"
)

// Sentinels, one per kind. errors.Is(err, ErrSignFailure) matches any *Error
// of that kind regardless of its message.
var (
	ErrCapacityExceeded = &Error{Kind: KindCapacityExceeded}
	ErrRenderOverflow   = &Error{Kind: KindRenderOverflow}
	ErrRender           = &Error{Kind: KindRender}
	ErrParse            = &Error{Kind: KindParse}
	ErrSignFailure      = &Error{Kind: KindSign}
	ErrHashFailure      = &Error{Kind: KindHash}
	ErrVerifyFailure    = &Error{Kind: KindVerify}
	ErrSinkFailure      = &Error{Kind: KindSink}
	ErrKey              = &Error{Kind: KindKey}
	ErrConfig           = &Error{Kind: KindConfig}
)

// Error is the structured error type.
//
// Op names the operation that failed (for example "store.Add"). Message is
// for humans; do not match on it.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches sentinels: a target with no Op and no Message matches on Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if t.Op != "" || t.Message != "" || t.Cause != nil {
		return e == t
	}
	return e.Kind == t.Kind
}

// New returns an *Error of the given kind.
func New(kind Kind, op, msg string) error {
	return &Error{Kind: kind, Op: op, Message: msg}
}

// Wrap returns an *Error of the given kind carrying cause.
func Wrap(kind Kind, op, msg string, cause error) error {
	if cause == nil {
		return New(kind, op, msg)
	}
	return &Error{Kind: kind, Op: op, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) an *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Cause
	}
	return false
}

// KindOf returns the Kind of the outermost *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}
