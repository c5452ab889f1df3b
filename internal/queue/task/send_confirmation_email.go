package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendConfirmationEmailTaskName  = "sendConfirmationEmailTask"
	SendConfirmationEmailQueueName = "sendConfirmationEmailQueue"
)

type SendConfirmationEmail struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

func NewSendConfirmationEmailTask(email string, token string) (*asynq.Task, error) {
	var data SendConfirmationEmail
	data.Email = email
	data.Token = token

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendConfirmationEmailTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendConfirmationEmailQueueName),
	), nil
}
