package errs

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Error kinds surfaced to callers. Match with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrStore      = errors.New("store failure")
)

// Wrap adds context and preserves the error chain (errors.Is/As works).
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf adds formatted context and preserves the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	args = append(args, err)
	return fmt.Errorf(format+": %w", args...)
}

// KindError carries a client-facing message tagged with one of the error kinds.
type KindError struct {
	kind  error
	msg   string
	cause error
}

func (e *KindError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *KindError) Unwrap() error { return e.cause }

func (e *KindError) Is(target error) bool { return target == e.kind }

// Message is the text meant for the client, without the cause chain.
func (e *KindError) Message() string { return e.msg }

// NotFound reports that the target of an operation does not exist.
func NotFound(msg string) error {
	return &KindError{kind: ErrNotFound, msg: msg}
}

// Invalid reports input that failed shape or required-field checks.
func Invalid(msg string) error {
	return &KindError{kind: ErrValidation, msg: msg}
}

// Store tags a persistence failure. Returns nil for a nil err.
func Store(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &KindError{kind: ErrStore, msg: msg, cause: err}
}

func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// ClientMessage returns the message of the first KindError in the chain,
// or fallback when there is none.
func ClientMessage(err error, fallback string) string {
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.Message()
	}
	return fallback
}

// WithStack captures a stack trace once (recommended: only at the root cause boundary).
// You can still wrap it later with Wrap/Wrapf.
func WithStack(err error) error {
	if err == nil {
		return nil
	}

	var se *StackError
	if errors.As(err, &se) {
		return err
	}

	return &StackError{
		err:   err,
		stack: debug.Stack(),
	}
}

// StackError wraps an error and stores a stack trace.
type StackError struct {
	err   error
	stack []byte
}

func (e *StackError) Error() string { return e.err.Error() }
func (e *StackError) Unwrap() error { return e.err }
func (e *StackError) Stack() []byte { return e.stack }

// Loggable makes slog encode the error as structured fields.
// Usage: slog.Any("err", errs.Loggable(err))
type loggable struct{ err error }

func Loggable(err error) slog.LogValuer { return loggable{err: err} }

func (l loggable) LogValue() slog.Value {
	if l.err == nil {
		return slog.GroupValue()
	}

	attrs := []slog.Attr{
		slog.String("message", l.err.Error()),
		slog.Any("chain", ErrorChainStrings(l.err)),
	}
	if kind := kindName(l.err); kind != "" {
		attrs = append(attrs, slog.String("kind", kind))
	}

	var se *StackError
	if errors.As(l.err, &se) {
		attrs = append(attrs, slog.String("stack", string(se.Stack())))
	}

	return slog.GroupValue(attrs...)
}

// ErrorChainStrings returns the unwrap chain as strings (outer -> inner).
func ErrorChainStrings(err error) []string {
	if err == nil {
		return nil
	}

	out := make([]string, 0, 8)
	for e := err; e != nil; e = errors.Unwrap(e) {
		out = append(out, e.Error())
	}
	return out
}

func kindName(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrStore):
		return "store"
	default:
		return ""
	}
}
