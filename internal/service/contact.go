package service

import (
	"context"
	"time"

	"github.com/deppfellow/contact-repository/internal/errs"
	"github.com/deppfellow/contact-repository/internal/model"
	"github.com/deppfellow/contact-repository/internal/repository"
	"github.com/deppfellow/contact-repository/internal/server"
	"github.com/deppfellow/contact-repository/internal/validation"
	"github.com/rs/zerolog"
)

// GetContactRequest asks for one contact. ID is wide so out-of-range input
// is reported by validation rather than silently truncated.
type GetContactRequest struct {
	ID int64 `validate:"min=1,max=2147483647"`
}

func (r *GetContactRequest) Validate() error {
	return validation.Struct(r)
}

// ContactService reads contacts through a ContactRepository, bounding each
// call with a timeout.
type ContactService struct {
	logger  *zerolog.Logger
	repo    repository.ContactRepository
	timeout time.Duration
}

// NewContactService builds the service. A zero timeout leaves the caller's
// context as the only bound.
func NewContactService(logger *zerolog.Logger, repo repository.ContactRepository, timeout time.Duration) *ContactService {
	return &ContactService{
		logger:  logger,
		repo:    repo,
		timeout: timeout,
	}
}

// GetContact validates req and fetches the contact.
func (s *ContactService) GetContact(ctx context.Context, req GetContactRequest) (*model.Contact, error) {
	if err := validation.Validate(&req); err != nil {
		return nil, err
	}
	id := int32(req.ID)

	logger := s.logger.With().
		Str("operation", "get_contact").
		Int32("contact_id", id).
		Logger()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	contact, err := s.repo.Get(ctx, id)
	if err != nil {
		event := logger.Error()
		if errs.IsInternal(err) {
			event = logger.Warn()
		}
		event.Err(err).
			Str("kind", string(errs.KindOf(err))).
			Dur("duration", time.Since(start)).
			Msg("contact lookup failed")
		return nil, err
	}

	logger.Debug().
		Dur("duration", time.Since(start)).
		Msg("contact lookup succeeded")

	return contact, nil
}

func queryTimeout(s *server.Server) time.Duration {
	seconds := s.Config.Database.QueryTimeout
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
