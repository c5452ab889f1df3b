package worker

import (
	"context"

	"github.com/cadastro-livre/backend/internal/config"
	emailProvider "github.com/cadastro-livre/backend/pkg/email"
)

type Workers struct {
	EmailSender EmailSender
}

type Deps struct {
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type EmailSender interface {
	SendConfirmationEmail(ctx context.Context, email string, token string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender: newEmailSender(deps.EmailProvider, deps.Config.Email, deps.Config.App),
	}
}
