package worker

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cadastro-livre/backend/internal/config"
	emailProvider "github.com/cadastro-livre/backend/pkg/email"
)

type emailSender struct {
	sender emailProvider.Sender
	config config.EmailConfig
	app    config.AppConfig
}

func newEmailSender(
	sender emailProvider.Sender,
	config config.EmailConfig,
	app config.AppConfig,
) *emailSender {
	return &emailSender{
		sender: sender,
		config: config,
		app:    app,
	}
}

type confirmationEmailInput struct {
	ConfirmationLink string
}

func (s *emailSender) SendConfirmationEmail(_ context.Context, email string, token string) error {
	if !s.config.Enabled {
		return nil
	}

	subject := "Confirme seu cadastro"

	link := fmt.Sprintf("%s/api/v1/cadastros/confirmar?token=%s", s.app.BaseURL, url.QueryEscape(token))
	templateInput := confirmationEmailInput{ConfirmationLink: link}
	sendInput := emailProvider.SendEmailInput{Subject: subject, To: email}

	if err := sendInput.GenerateBodyFromHTML(s.config.Templates.Confirmation, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
