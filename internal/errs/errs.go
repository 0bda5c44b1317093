// Package errs defines the error type returned by the data-access layer.
//
// Every failure a repository reports is an *Error carrying one of two
// kinds: a database error wrapping whatever the driver reported, or an
// internal error raised by the application itself (for example a missing
// record). Errors play nicely with the standard errors package.
package errs
