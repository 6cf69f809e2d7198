package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Notifier é o lado dos casos de uso: respeita a preferência do usuário e
// nunca devolve erro, só registra e conta a falha.
type Notifier struct {
	sink    Sink
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewNotifier(sink Sink, m *metrics.Metrics, log *zap.Logger) *Notifier {
	return &Notifier{sink: sink, metrics: m, log: log}
}

// Send devolve true quando a mensagem foi aceita pelo sink.
func (n *Notifier) Send(ctx context.Context, to *models.User, kind Kind, fields map[string]string) bool {
	if to == nil || to.Email == "" || !to.EmailNotifications {
		return false
	}

	err := n.sink.Notify(ctx, Message{
		To:     to.Email,
		Name:   to.Name,
		Kind:   kind,
		Fields: fields,
	})
	if err != nil {
		n.metrics.NotificationFailed(string(kind))
		n.log.Warn("notification failed",
			zap.Uint("user_id", to.ID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return false
	}

	return true
}
