package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies an error for the HTTP layer.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Error is a domain error that carries a client-facing code.
// Properties are logged server-side and never sent to the client.
type Error struct {
	Kind       Kind
	Code       string
	Arguments  []string
	Resource   string
	Properties map[string]string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code)
	if e.Resource != "" {
		b.WriteString(" (")
		b.WriteString(e.Resource)
		b.WriteString(")")
	}
	if len(e.Properties) > 0 {
		keys := make([]string, 0, len(e.Properties))
		for k := range e.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%s", k, e.Properties[k])
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// With records a property for logging and returns the receiver.
func (e *Error) With(key string, value any) *Error {
	if e.Properties == nil {
		e.Properties = make(map[string]string)
	}
	e.Properties[key] = fmt.Sprint(value)
	return e
}

// WithArguments sets the arguments the client may use to localize the message.
func (e *Error) WithArguments(args ...string) *Error {
	e.Arguments = append(e.Arguments, args...)
	return e
}

// Wrap attaches a cause.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Code: NOT_FOUND, Resource: resource}
}

func Invalid(resource, code string) *Error {
	return &Error{Kind: KindValidation, Code: code, Resource: resource}
}

func Unauthorized(resource, code string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Resource: resource}
}

func Forbidden(resource, code string) *Error {
	return &Error{Kind: KindForbidden, Code: code, Resource: resource}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func is(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

func IsNotFound(err error) bool     { return is(err, KindNotFound) }
func IsValidation(err error) bool   { return is(err, KindValidation) }
func IsUnauthorized(err error) bool { return is(err, KindUnauthorized) }
func IsForbidden(err error) bool    { return is(err, KindForbidden) }

// HasCode reports whether err carries the given client-facing code.
func HasCode(err error, code string) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
