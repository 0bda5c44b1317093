package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/deppfellow/contact-repository/internal/model"
	"github.com/deppfellow/contact-repository/internal/repository"
	"github.com/deppfellow/contact-repository/internal/service"
	"github.com/deppfellow/contact-repository/internal/validation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deadlineRepository struct {
	deadline time.Time
	ok       bool
}

func (d *deadlineRepository) Get(ctx context.Context, id int32) (*model.Contact, error) {
	d.deadline, d.ok = ctx.Deadline()
	return &model.Contact{ID: id}, nil
}

func TestContactService_GetContact(t *testing.T) {
	jane := model.Contact{ID: 7, FirstName: "Jane", LastName: "Doe", Phone: "555-1234", Email: "jane@x.com"}

	t.Run("Should return the contact from the repository", func(t *testing.T) {
		logger := zerolog.Nop()
		svc := service.NewContactService(&logger, repository.NewMemoryRepository(jane), time.Second)
		contact, err := svc.GetContact(context.Background(), service.GetContactRequest{ID: 7})
		require.NoError(t, err)
		assert.Equal(t, jane, *contact)
	})

	t.Run("Should pass not found through and log it as a warning", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)
		svc := service.NewContactService(&logger, repository.NewMemoryRepository(jane), time.Second)
		contact, err := svc.GetContact(context.Background(), service.GetContactRequest{ID: 12})
		require.Error(t, err)
		assert.Nil(t, contact)
		assert.ErrorIs(t, err, repository.ErrContactNotFound)
		assert.Contains(t, buf.String(), `"level":"warn"`)
		assert.Contains(t, buf.String(), `"contact_id":12`)
		assert.Contains(t, buf.String(), `"kind":"internal"`)
	})

	t.Run("Should reject ids outside the int32 range", func(t *testing.T) {
		logger := zerolog.Nop()
		svc := service.NewContactService(&logger, repository.NewMemoryRepository(jane), time.Second)
		_, err := svc.GetContact(context.Background(), service.GetContactRequest{ID: 1 << 40})
		var vErr *validation.Error
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "id", vErr.Fields[0].Field)
	})

	t.Run("Should reject non positive ids", func(t *testing.T) {
		logger := zerolog.Nop()
		repo := repository.NewMemoryRepository(model.Contact{ID: 0}, model.Contact{ID: -5})
		svc := service.NewContactService(&logger, repo, time.Second)
		for _, id := range []int64{0, -5} {
			contact, err := svc.GetContact(context.Background(), service.GetContactRequest{ID: id})
			assert.Nil(t, contact)
			var vErr *validation.Error
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "id", vErr.Fields[0].Field)
		}
	})

	t.Run("Should bound the repository call with the timeout", func(t *testing.T) {
		logger := zerolog.Nop()
		repo := &deadlineRepository{}
		svc := service.NewContactService(&logger, repo, 5*time.Second)
		before := time.Now()
		_, err := svc.GetContact(context.Background(), service.GetContactRequest{ID: 1})
		require.NoError(t, err)
		require.True(t, repo.ok)
		assert.WithinDuration(t, before.Add(5*time.Second), repo.deadline, time.Second)
	})

	t.Run("Should leave the context alone without a timeout", func(t *testing.T) {
		logger := zerolog.Nop()
		repo := &deadlineRepository{}
		svc := service.NewContactService(&logger, repo, 0)
		_, err := svc.GetContact(context.Background(), service.GetContactRequest{ID: 1})
		require.NoError(t, err)
		assert.False(t, repo.ok)
	})
}
