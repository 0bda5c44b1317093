package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/contact-repository/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
)

// ErrCode reports the mapped Code for a given error.
//
// If err can be unwrapped into *Error its Code is returned, otherwise Other.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into our Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates consistent application error codes.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	contacts + UndefinedTable => CONTACT_UNDEFINED_TABLE
func generateErrorCode(tableName string, action string) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// actionFor maps a Code to the ACTION half of an error code.
func actionFor(code Code) string {
	switch code {
	case ForeignKeyViolation:
		return "NOT_FOUND"
	case UniqueViolation:
		return "ALREADY_EXISTS"
	case NotNullViolation:
		return "REQUIRED"
	case CheckViolation:
		return "INVALID"
	case Other:
		return "ERROR"
	default:
		return errs.MakeUpperCaseWithUnderscores(strings.ReplaceAll(string(code), "_", " "))
	}
}

// HandleRowError is HandleError for a lookup of a single row by id.
//
// Output:
//   - pgx.ErrNoRows: internal <TABLE>_NOT_FOUND, "no record with id <id>"
//   - pgx.ErrTooManyRows: internal <TABLE>_AMBIGUOUS, "multiple records with id <id>"
//   - anything else: as HandleError
func HandleRowError(err error, table string, id any) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		code := generateErrorCode(table, "NOT_FOUND")
		return errs.NewNotFoundError(fmt.Sprintf("no record with id %v", id), &code)
	case errors.Is(err, pgx.ErrTooManyRows):
		code := generateErrorCode(table, "AMBIGUOUS")
		return errs.NewInternalError(fmt.Sprintf("multiple records with id %v", id), &code)
	}
	return HandleError(err, table)
}

// HandleError converts a low-level database error into an *errs.Error.
//
// table names the entity the failing statement was about; it is used
// when the driver error does not carry a table of its own.
//
// Output:
//   - *errs.Error: returned unchanged
//   - *pgconn.PgError: database error carrying SQLSTATE and a mapped code
//   - connect errors, timeouts, cancellation: database error
//   - anything else: database error with the generic code
func HandleError(err error, table string) error {
	if err == nil {
		return nil
	}

	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		tableName := sqlErr.TableName
		if tableName == "" {
			tableName = table
		}
		code := generateErrorCode(tableName, actionFor(sqlErr.Code))

		dbErr := errs.NewDatabaseError(pkgerrors.WithStack(sqlErr), &code)
		dbErr.DatabaseCode = sqlErr.DatabaseCode
		return dbErr
	}

	var code string
	var connectErr *pgconn.ConnectError
	switch {
	case errors.As(err, &connectErr):
		code = generateErrorCode(table, "CONNECTION_FAILED")
	case errors.Is(err, context.Canceled):
		code = generateErrorCode(table, "CANCELED")
	case errors.Is(err, context.DeadlineExceeded), pgconn.Timeout(err):
		code = generateErrorCode(table, "TIMEOUT")
	default:
		code = errs.CodeDatabase
	}

	return errs.NewDatabaseError(pkgerrors.WithStack(err), &code)
}
