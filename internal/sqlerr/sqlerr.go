// Package sqlerr specifically handles database driver errors.
//
// It parses error codes from the database driver (SQLSTATE) and
// converts them into errs.Error values carrying a stable machine
// code, so callers can switch on the failure without knowing pgx.
package sqlerr

import "strings"

// Code is a driver-independent category for a PostgreSQL SQLSTATE.
type Code string

const (
	Other                     Code = "other"
	NotNullViolation          Code = "not_null_violation"
	ForeignKeyViolation       Code = "foreign_key_violation"
	UniqueViolation           Code = "unique_violation"
	CheckViolation            Code = "check_violation"
	UndefinedTable            Code = "undefined_table"
	UndefinedColumn           Code = "undefined_column"
	UndefinedDatabase         Code = "undefined_database"
	SyntaxError               Code = "syntax_error"
	InvalidTextRepresentation Code = "invalid_text_representation"
	NumericValueOutOfRange    Code = "numeric_value_out_of_range"
	InsufficientPrivilege     Code = "insufficient_privilege"
	InvalidAuthorization      Code = "invalid_authorization"
	ConnectionException       Code = "connection_exception"
	QueryCanceled             Code = "query_canceled"
	AdminShutdown             Code = "admin_shutdown"
)

// sqlStates maps exact SQLSTATE values to a Code.
var sqlStates = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"42P01": UndefinedTable,
	"42703": UndefinedColumn,
	"3D000": UndefinedDatabase,
	"42601": SyntaxError,
	"22P02": InvalidTextRepresentation,
	"22003": NumericValueOutOfRange,
	"42501": InsufficientPrivilege,
	"28000": InvalidAuthorization,
	"28P01": InvalidAuthorization,
	"57014": QueryCanceled,
	"57P01": AdminShutdown,
}

// MapCode converts a SQLSTATE into a Code. Unknown states in class 08
// are connection exceptions; everything else is Other.
func MapCode(sqlState string) Code {
	if code, ok := sqlStates[sqlState]; ok {
		return code
	}
	if strings.HasPrefix(sqlState, "08") {
		return ConnectionException
	}
	return Other
}

// Severity mirrors the severity field of a PostgreSQL error report.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity converts the driver's severity string. Unknown values map to ERROR.
func MapSeverity(severity string) Severity {
	switch s := Severity(strings.ToUpper(severity)); s {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}

// Error is a structured view of a PostgreSQL server error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

// Error returns the driver's error text unchanged.
func (e *Error) Error() string {
	if e.driverErr != nil {
		return e.driverErr.Error()
	}
	return e.Message
}

// Unwrap returns the original driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}
