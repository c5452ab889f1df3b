package mock

import (
	"github.com/stretchr/testify/mock"

	"github.com/cadastro-livre/backend/pkg/email"
)

type EmailSender struct {
	mock.Mock
}

func (s *EmailSender) Send(input email.SendEmailInput) error {
	args := s.Called(input)
	return args.Error(0)
}
