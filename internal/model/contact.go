// Package model holds the domain records returned by repositories.
package model

import "fmt"

// Contact is a person stored in the contact table.
//
// Field order matches the column order of the contact queries; rows are
// mapped positionally.
type Contact struct {
	ID        int32  `json:"id"        db:"id"`
	FirstName string `json:"firstname" db:"firstname"`
	LastName  string `json:"lastname"  db:"lastname"`
	Phone     string `json:"phone"     db:"phone"`
	Email     string `json:"email"     db:"email"`
}

// FullName joins first and last name.
func (c Contact) FullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}
