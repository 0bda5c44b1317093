package repository

import (
	"context"
	"sync"

	"github.com/deppfellow/contact-repository/internal/model"
	"github.com/deppfellow/contact-repository/internal/sqlerr"
)

// MemoryRepository implements ContactRepository over a map. It is meant
// for tests of code that consumes a ContactRepository.
type MemoryRepository struct {
	mu       sync.RWMutex
	contacts map[int32]model.Contact
}

var _ ContactRepository = (*MemoryRepository)(nil)

// NewMemoryRepository returns a repository seeded with cs. A later contact
// with the same id replaces an earlier one.
func NewMemoryRepository(cs ...model.Contact) *MemoryRepository {
	contacts := make(map[int32]model.Contact, len(cs))
	for _, c := range cs {
		contacts[c.ID] = c
	}
	return &MemoryRepository{contacts: contacts}
}

// Put stores c, replacing any contact with the same id.
func (m *MemoryRepository) Put(c model.Contact) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts[c.ID] = c
}

// Get returns a copy of the stored contact.
func (m *MemoryRepository) Get(ctx context.Context, id int32) (*model.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, sqlerr.HandleError(err, contactTable)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.contacts[id]
	if !ok {
		return nil, contactNotFound(id)
	}
	return &c, nil
}
