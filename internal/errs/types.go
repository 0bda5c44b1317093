package errs

import (
	"errors"
	"strings"
)

// Kind tags which side of the union an Error belongs to.
type Kind string

const (
	// KindDatabase is a transport or database failure reported by the driver
	// (connectivity loss, malformed query, constraint violation...).
	KindDatabase Kind = "database"

	// KindInternal is an application-level failure raised locally,
	// such as a lookup that matched no record.
	KindInternal Kind = "internal"
)

// Default machine codes used when the caller does not supply one.
const (
	CodeDatabase = "DATABASE_ERROR"
	CodeInternal = "INTERNAL_ERROR"
	CodeNotFound = "NOT_FOUND"
)

// Error is the error type returned by repositories.
//
// Fields:
//   - Kind: database or internal.
//   - Code: machine-friendly code (e.g. "CONTACT_NOT_FOUND").
//   - Message: human-friendly message. For database errors it is the
//     driver's message, unchanged.
//   - DatabaseCode: SQLSTATE reported by PostgreSQL, when there was one.
//   - Err: the wrapped driver error (database kind only).
type Error struct {
	Kind         Kind
	Code         string
	Message      string
	DatabaseCode string
	Err          error
}

// Error returns the message. A database error without an explicit message
// surfaces the driver error verbatim.
func (e *Error) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the driver error to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
//
// A target with a Code only matches errors carrying that same code, so
// package-level sentinels such as
//
//	var ErrContactNotFound = &errs.Error{Kind: errs.KindInternal, Code: "CONTACT_NOT_FOUND"}
//
// can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

// WithMessage returns a copy of this Error with Message replaced.
func (e *Error) WithMessage(message string) *Error {
	return &Error{
		Kind:         e.Kind,
		Code:         e.Code,
		Message:      message,
		DatabaseCode: e.DatabaseCode,
		Err:          e.Err,
	}
}

// Sentinels matching any error of the given kind.
var (
	ErrDatabase = &Error{Kind: KindDatabase}
	ErrInternal = &Error{Kind: KindInternal}
)

// NewDatabaseError wraps a driver error.
//
// code is optional; when nil the generic "DATABASE_ERROR" is used.
func NewDatabaseError(err error, code *string) *Error {
	formattedCode := CodeDatabase
	if code != nil {
		formattedCode = *code
	}

	return &Error{
		Kind: KindDatabase,
		Code: formattedCode,
		Err:  err,
	}
}

// NewInternalError creates an application-level error with a message.
func NewInternalError(message string, code *string) *Error {
	formattedCode := CodeInternal
	if code != nil {
		formattedCode = *code
	}

	return &Error{
		Kind:    KindInternal,
		Code:    formattedCode,
		Message: message,
	}
}

// NewNotFoundError creates the internal error reported when a lookup
// matched no record. The code defaults to "NOT_FOUND".
func NewNotFoundError(message string, code *string) *Error {
	formattedCode := CodeNotFound
	if code != nil {
		formattedCode = *code
	}
	return NewInternalError(message, &formattedCode)
}

// KindOf returns the Kind of the first *Error in err's chain, or "" when
// err is not one of ours.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsDatabase reports whether err is a database error.
func IsDatabase(err error) bool {
	return KindOf(err) == KindDatabase
}

// IsInternal reports whether err is an internal (application) error.
func IsInternal(err error) bool {
	return KindOf(err) == KindInternal
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"undefined table" -> "UNDEFINED_TABLE"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
