// FILE: lixenwraith/conftree/errors.go
package conftree

import (
	"errors"
	"fmt"
)

// Kind classifies an Error so callers can branch on the failure class
// without parsing messages.
type Kind int

const (
	KindStructural Kind = iota + 1 // missing root, path, node or schema
	KindType                       // node type disagrees with the requested type
	KindCapacity                   // array size or path depth limit exceeded
	KindParse                      // malformed path, index, argument or event sequence
	KindNumeric                    // overflow or underflow during coercion
	KindIO                         // document source unreadable
	KindValidation                 // required path absent or rejected by a validator
	KindConflict                   // duplicate dictionary key or occupied array slot
)

// Sentinel errors matched by errors.Is against any *Error of the same kind.
var (
	ErrStructural   = errors.New("structural error")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrCapacity     = errors.New("capacity exceeded")
	ErrParse        = errors.New("parse error")
	ErrNumeric      = errors.New("numeric range error")
	ErrIO           = errors.New("i/o error")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)

var kindSentinels = map[Kind]error{
	KindStructural: ErrStructural,
	KindType:       ErrTypeMismatch,
	KindCapacity:   ErrCapacity,
	KindParse:      ErrParse,
	KindNumeric:    ErrNumeric,
	KindIO:         ErrIO,
	KindValidation: ErrValidation,
	KindConflict:   ErrConflict,
}

// String returns the sentinel text for the kind.
func (k Kind) String() string {
	if s, ok := kindSentinels[k]; ok {
		return s.Error()
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the single error type returned by tree, ingestion and pipeline
// operations. Msg never exceeds MaxErrorLen bytes.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // optional cause
}

func (e *Error) Error() string {
	return e.Msg
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: boundMessage(fmt.Sprintf(format, args...))}
}

// wrapError appends the cause text to the message and keeps the cause for errors.Is.
func wrapError(kind Kind, cause error, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return &Error{Kind: kind, Msg: boundMessage(msg), Err: cause}
}

func boundMessage(msg string) string {
	if len(msg) >= MaxErrorLen {
		return msgTooLong
	}
	return msg
}
