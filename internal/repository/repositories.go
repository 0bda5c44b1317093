package repository

import (
	"github.com/deppfellow/contact-repository/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Contacts ContactRepository
}

// NewRepositories constructs the repository container on top of the
// connection owned by s.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Contacts: NewPgsqlRepositoryFromDB(s.DB.Pool),
	}
}
