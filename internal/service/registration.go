package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cadastro-livre/backend/internal/config"
	"github.com/cadastro-livre/backend/internal/domain"
	"github.com/cadastro-livre/backend/internal/queue/client"
	"github.com/cadastro-livre/backend/internal/queue/task"
	"github.com/cadastro-livre/backend/internal/repository"
	"github.com/cadastro-livre/backend/pkg/cpf"
	"github.com/cadastro-livre/backend/pkg/email"
	"github.com/cadastro-livre/backend/pkg/hash"
)

// Confirmation policies. Under PolicyToken a cadastro starts unconfirmed
// and receives a single-use confirmation link by email; under PolicyAuto
// the email is taken as confirmed at creation and no token exists.
const (
	PolicyToken = "token"
	PolicyAuto  = "auto"
)

type registrationService struct {
	repo   repository.Registrations
	hasher hash.PasswordHasher
	config config.RegistrationConfig
	logger *zap.Logger
}

func newRegistrationService(
	repo repository.Registrations,
	hasher hash.PasswordHasher,
	config config.RegistrationConfig,
	logger *zap.Logger,
) *registrationService {
	return &registrationService{
		repo:   repo,
		hasher: hasher,
		config: config,
		logger: logger,
	}
}

type RegisterInput struct {
	Email         string
	Senha         string
	TermosAceitos bool
	CPF           string

	NomeCompleto   string
	Telefone       string
	DataNascimento string
	CEP            string
	Logradouro     string
	Numero         string
	Complemento    string
	Bairro         string
	Cidade         string
	Estado         string
}

type RegisterOutput struct {
	ID    uuid.UUID
	Email string
}

func (s *registrationService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	canonicalCPF, err := validate(input)
	if err != nil {
		return nil, err
	}

	senhaHash, err := s.hasher.Hash(input.Senha)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate cadastro id failed: %w", err)
	}

	registration := newRegistration(id, input, canonicalCPF, senhaHash)

	var token string
	if s.config.ConfirmationPolicy == PolicyAuto {
		registration.EmailConfirmado = true
	} else {
		token, err = newConfirmationToken()
		if err != nil {
			return nil, fmt.Errorf("generate confirmation token failed: %w", err)
		}
		registration.ConfirmacaoToken = sql.NullString{String: token, Valid: true}
	}

	if err := s.repo.Create(ctx, registration); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create cadastro failed: %w", err)
	}

	if token != "" {
		s.enqueueConfirmationEmail(ctx, registration.Email, token)
	}

	return &RegisterOutput{ID: registration.ID, Email: registration.Email}, nil
}

func (s *registrationService) Confirm(ctx context.Context, token string) error {
	if err := s.repo.ConfirmByToken(ctx, token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("confirm cadastro failed: %w", err)
	}

	return nil
}

// validate checks the submission in a fixed order so the response for a
// given defect is deterministic: presence, then email format, then CPF
// validity. It returns the canonical CPF on success.
func validate(input RegisterInput) (string, error) {
	switch {
	case strings.TrimSpace(input.Email) == "":
		return "", newValidationError("email", ReasonMissingField)
	case input.Senha == "":
		return "", newValidationError("senha", ReasonMissingField)
	case !input.TermosAceitos:
		return "", newValidationError("termos_aceitos", ReasonMissingField)
	case strings.TrimSpace(input.CPF) == "":
		return "", newValidationError("cpf", ReasonMissingField)
	}

	if !email.IsEmailValid(input.Email) {
		return "", newValidationError("email", ReasonInvalidFormat)
	}

	canonical := cpf.Normalize(input.CPF)
	if !cpf.Valid(canonical) {
		return "", newValidationError("cpf", ReasonInvalidIdentifier)
	}

	return canonical, nil
}

// newRegistration builds the row to insert. The slice below is the one
// place optional submission fields are enumerated; each empty value
// persists as NULL, never as "".
func newRegistration(id uuid.UUID, input RegisterInput, canonicalCPF string, senhaHash string) *domain.Registration {
	registration := &domain.Registration{
		ID:            id,
		Email:         input.Email,
		CPF:           canonicalCPF,
		SenhaHash:     senhaHash,
		TermosAceitos: input.TermosAceitos,
	}

	for _, field := range []struct {
		dst *sql.NullString
		val string
	}{
		{&registration.NomeCompleto, input.NomeCompleto},
		{&registration.Telefone, input.Telefone},
		{&registration.DataNascimento, input.DataNascimento},
		{&registration.CEP, input.CEP},
		{&registration.Logradouro, input.Logradouro},
		{&registration.Numero, input.Numero},
		{&registration.Complemento, input.Complemento},
		{&registration.Bairro, input.Bairro},
		{&registration.Cidade, input.Cidade},
		{&registration.Estado, input.Estado},
	} {
		if v := strings.TrimSpace(field.val); v != "" {
			*field.dst = sql.NullString{String: v, Valid: true}
		}
	}

	return registration
}

func newConfirmationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// enqueueConfirmationEmail hands the confirmation mail to the queue. The
// cadastro is already persisted at this point, so a queue hiccup is
// logged rather than failing the request; delivery retries belong to the
// queue, not to the registration.
func (s *registrationService) enqueueConfirmationEmail(ctx context.Context, to string, token string) {
	emailTask, err := task.NewSendConfirmationEmailTask(to, token)
	if err != nil {
		s.logger.Warn("build confirmation email task failed", zap.Error(err))
		return
	}

	queueClient := client.GetClient(ctx)
	if queueClient == nil {
		s.logger.Debug("queue client not configured, skipping confirmation email")
		return
	}

	if _, err := queueClient.EnqueueContext(ctx, emailTask); err != nil {
		s.logger.Warn("enqueue confirmation email failed", zap.Error(err))
	}
}
