package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/cadastro-livre/backend/internal/domain"
)

// MemoryRegistrations mirrors the postgres store's semantics in memory:
// inserts are atomic under the mutex and uniqueness of email, CPF and
// token is enforced at insert time. Used by tests and local runs.
type MemoryRegistrations struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*domain.Registration
	byEmail map[string]uuid.UUID
	byCPF   map[string]uuid.UUID
	byToken map[string]uuid.UUID
}

func NewMemoryRegistrations() *MemoryRegistrations {
	return &MemoryRegistrations{
		byID:    make(map[uuid.UUID]*domain.Registration),
		byEmail: make(map[string]uuid.UUID),
		byCPF:   make(map[string]uuid.UUID),
		byToken: make(map[string]uuid.UUID),
	}
}

func (r *MemoryRegistrations) Create(_ context.Context, registration *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[registration.Email]; ok {
		return domain.ErrDuplicateEntry
	}
	if _, ok := r.byCPF[registration.CPF]; ok {
		return domain.ErrDuplicateEntry
	}
	if registration.ConfirmacaoToken.Valid {
		if _, ok := r.byToken[registration.ConfirmacaoToken.String]; ok {
			return domain.ErrDuplicateEntry
		}
	}

	stored := *registration
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID
	r.byCPF[stored.CPF] = stored.ID
	if stored.ConfirmacaoToken.Valid {
		r.byToken[stored.ConfirmacaoToken.String] = stored.ID
	}

	return nil
}

func (r *MemoryRegistrations) GetByEmail(_ context.Context, email string) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}

	copied := *r.byID[id]
	return &copied, nil
}

func (r *MemoryRegistrations) ConfirmByToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byToken[token]
	if !ok {
		return domain.ErrNotFound
	}

	stored := r.byID[id]
	stored.EmailConfirmado = true
	stored.ConfirmacaoToken.Valid = false
	stored.ConfirmacaoToken.String = ""
	delete(r.byToken, token)

	return nil
}
