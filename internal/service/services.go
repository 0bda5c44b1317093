package service

import (
	"github.com/deppfellow/contact-repository/internal/repository"
	"github.com/deppfellow/contact-repository/internal/server"
)

type Services struct {
	Contacts *ContactService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Contacts: NewContactService(s.Logger, repos.Contacts, queryTimeout(s)),
	}, nil
}
