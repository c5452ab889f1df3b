package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/cadastro-livre/backend/internal/domain"
)

type Repositories struct {
	Registrations Registrations
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Registrations: newRegistrationRepository(db),
	}
}

// Registrations persists cadastro rows. Uniqueness of email and CPF is
// enforced by the store itself, never pre-checked by callers, so that
// exactly one of two concurrent conflicting inserts succeeds.
type Registrations interface {
	// Create inserts the registration atomically. A uniqueness violation
	// on email, CPF or token is reported as domain.ErrDuplicateEntry;
	// any other failure is wrapped and returned as-is.
	Create(ctx context.Context, registration *domain.Registration) error

	GetByEmail(ctx context.Context, email string) (*domain.Registration, error)

	// ConfirmByToken atomically sets email_confirmado and clears the
	// token on the single row whose confirmation token still matches.
	// A token that never existed or was already consumed yields
	// domain.ErrNotFound.
	ConfirmByToken(ctx context.Context, token string) error
}
