package worker_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cadastro-livre/backend/internal/config"
	"github.com/cadastro-livre/backend/internal/worker"
	emailProvider "github.com/cadastro-livre/backend/pkg/email"
	emailMock "github.com/cadastro-livre/backend/pkg/email/mock"
)

func newWorkers(sender emailProvider.Sender, enabled bool) *worker.Workers {
	return worker.NewWorkers(worker.Deps{
		EmailProvider: sender,
		Config: &config.Config{
			App: config.AppConfig{BaseURL: "https://cadastro.example.com"},
			Email: config.EmailConfig{
				Enabled:   enabled,
				Templates: config.EmailTemplates{Confirmation: "confirmation_email.html"},
			},
		},
	})
}

func TestSendConfirmationEmail_Disabled(t *testing.T) {
	sender := new(emailMock.EmailSender)
	workers := newWorkers(sender, false)

	err := workers.EmailSender.SendConfirmationEmail(context.Background(), "maria@example.com", "tok")

	assert.NoError(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything)
}

func TestSendConfirmationEmail_BuildsLink(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "templates"), 0o755))
	tpl := []byte(`<a href="{{.ConfirmationLink}}">confirmar</a>`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "templates", "confirmation_email.html"), tpl, 0o644))
	t.Chdir(dir)

	sender := new(emailMock.EmailSender)
	sender.On("Send", mock.MatchedBy(func(input emailProvider.SendEmailInput) bool {
		return input.To == "maria@example.com" && input.Subject == "Confirme seu cadastro"
	})).Return(nil)

	workers := newWorkers(sender, true)

	err := workers.EmailSender.SendConfirmationEmail(context.Background(), "maria@example.com", "tok-123")
	require.NoError(t, err)

	sender.AssertExpectations(t)
	sent := sender.Calls[0].Arguments.Get(0).(emailProvider.SendEmailInput)
	assert.Contains(t, sent.Body, "https://cadastro.example.com/api/v1/cadastros/confirmar?token=tok-123")
}
