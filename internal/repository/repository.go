// Package repository handles all interactions with the database.
//
// It contains the raw SQL queries and the row mapping for each entity,
// abstracting SQL away from the service layer. Every repository is
// described by an interface so callers can swap the PostgreSQL
// implementation for the in-memory one in tests.
package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/contact-repository/internal/errs"
	"github.com/deppfellow/contact-repository/internal/model"
)

// ContactRepository reads contacts by identifier.
type ContactRepository interface {
	// Get returns the contact with the given id. A missing id yields an
	// error matching ErrContactNotFound, never a zero Contact.
	Get(ctx context.Context, id int32) (*model.Contact, error)
}

var (
	// ErrContactNotFound matches (errors.Is) the error returned when no row has the id.
	ErrContactNotFound = &errs.Error{Kind: errs.KindInternal, Code: "CONTACT_NOT_FOUND"}

	// ErrContactAmbiguous matches the error returned when more than one row has the id.
	ErrContactAmbiguous = &errs.Error{Kind: errs.KindInternal, Code: "CONTACT_AMBIGUOUS"}
)

func contactNotFound(id int32) error {
	return ErrContactNotFound.WithMessage(fmt.Sprintf("no record with id %d", id))
}
