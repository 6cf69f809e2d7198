package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewWorker monta o servidor asynq que consome a fila de e-mails.
func NewWorker(redis asynq.RedisClientOpt, sender Sender, log *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(redis, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{queueName: 1},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEmailSend, HandleEmailTask(sender, log))

	return srv, mux
}

func HandleEmailTask(sender Sender, log *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var msg Message
		if err := json.Unmarshal(task.Payload(), &msg); err != nil {
			// payload inválido não adianta reprocessar
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}

		subject, body, err := Render(msg)
		if err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		if err := sender.Send(ctx, msg.To, subject, body); err != nil {
			log.Warn("email send failed", zap.String("id", msg.ID), zap.String("kind", string(msg.Kind)), zap.Error(err))
			return err
		}

		log.Debug("email sent", zap.String("id", msg.ID), zap.String("kind", string(msg.Kind)))
		return nil
	}
}
