package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/cadastro-livre/backend/internal/queue/task"
	"github.com/cadastro-livre/backend/internal/worker"
)

type sendConfirmationEmailProcessor struct {
	workers *worker.Workers
}

func NewSendConfirmationEmailProcessor(workers *worker.Workers) *sendConfirmationEmailProcessor {
	return &sendConfirmationEmailProcessor{
		workers: workers,
	}
}

func (p *sendConfirmationEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendConfirmationEmail
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process send confirmation email task json unmarshal failed: %w", err)
	}

	if err = p.workers.EmailSender.SendConfirmationEmail(ctx, data.Email, data.Token); err != nil {
		return fmt.Errorf("send confirmation email failed: %w", err)
	}

	return nil
}
