// Package notification entrega avisos a clientes e barbeiros. Quem chama trata
// falhas como não fatais: registra no log e segue.
package notification

import (
	"context"
	"sync"
)

type Kind string

const (
	KindBookingConfirmed Kind = "booking_confirmed"
	KindBookingCancelled Kind = "booking_cancelled"
	KindBookingVoided    Kind = "booking_cancelled_by_absence"
	KindAbsenceApproved  Kind = "absence_approved"
	KindAbsenceRejected  Kind = "absence_rejected"
)

type Message struct {
	ID     string            `json:"id"`
	To     string            `json:"to"`
	Name   string            `json:"name"`
	Kind   Kind              `json:"kind"`
	Fields map[string]string `json:"fields"`
}

type Sink interface {
	Notify(ctx context.Context, msg Message) error
}

// MemorySink guarda as mensagens em memória; usado em testes e no modo dev.
type MemorySink struct {
	mu       sync.Mutex
	messages []Message

	// FailFor faz Notify falhar para os destinatários listados.
	FailFor map[string]error
}

func (s *MemorySink) Notify(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.FailFor[msg.To]; ok {
		return err
	}
	s.messages = append(s.messages, msg)
	return nil
}

func (s *MemorySink) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}
