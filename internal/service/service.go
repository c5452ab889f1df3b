package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/cadastro-livre/backend/internal/config"
	"github.com/cadastro-livre/backend/internal/repository"
	"github.com/cadastro-livre/backend/pkg/hash"
)

type Services struct {
	Registrations Registrations
}

type Deps struct {
	Logger *zap.Logger
	Config *config.Config
	Hasher hash.PasswordHasher
	Repos  *repository.Repositories
}

func NewServices(deps Deps) *Services {
	return &Services{
		Registrations: newRegistrationService(
			deps.Repos.Registrations,
			deps.Hasher,
			deps.Config.Registration,
			deps.Logger,
		),
	}
}

type Registrations interface {
	// Register runs the full validate, normalize, hash and insert
	// sequence for one submission. It returns a ValidationError,
	// ErrAlreadyRegistered, or a wrapped storage/processing failure.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// Confirm consumes a confirmation token, driving the matching
	// cadastro from unconfirmed to confirmed exactly once. A token that
	// never existed or was already consumed yields ErrInvalidToken.
	Confirm(ctx context.Context, token string) error
}
