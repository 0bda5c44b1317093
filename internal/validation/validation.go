// Package validation contains the logic for validating
// input before it reaches a repository.
//
// It uses the `validator` library to enforce rules defined in
// struct tags and extracts validation errors into field-level
// messages a user can act on.
package validation
