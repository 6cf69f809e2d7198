package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	TypeEmailSend = "notification:email"
	queueName     = "notifications"
)

type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueSink publica a notificação na fila asynq; o envio acontece no Worker.
type QueueSink struct {
	client Enqueuer
}

func NewQueueSink(client Enqueuer) *QueueSink {
	return &QueueSink{client: client}
}

func (s *QueueSink) Notify(ctx context.Context, msg Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notification: encode %s: %w", msg.Kind, err)
	}

	task := asynq.NewTask(TypeEmailSend, payload)
	if _, err := s.client.EnqueueContext(ctx, task,
		asynq.Queue(queueName),
		asynq.TaskID(msg.ID),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	); err != nil {
		return fmt.Errorf("notification: enqueue %s: %w", msg.Kind, err)
	}
	return nil
}
