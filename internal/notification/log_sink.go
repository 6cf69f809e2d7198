package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogSink só registra a notificação. Padrão quando não há Redis configurado.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Notify(_ context.Context, msg Message) error {
	subject, _, err := Render(msg)
	if err != nil {
		return err
	}

	s.log.Info("notification",
		zap.String("id", msg.ID),
		zap.String("kind", string(msg.Kind)),
		zap.String("to", msg.To),
		zap.String("subject", subject),
	)
	return nil
}
