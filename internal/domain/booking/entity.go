package booking

import (
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func ValidateComments(comments string) error {
	if utf8.RuneCountInString(comments) > MaxCommentsLength {
		return httperr.ErrValidation("comments_too_long")
	}
	return nil
}

func Cancel(b *models.Booking, now time.Time, reason string) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	b.CancellationReason = reason
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

// CancelForAbsence também derruba reservas concluídas: a ausência aprovada
// anula o atendimento. Já cancelada não muda nada (false).
func CancelForAbsence(b *models.Booking, now time.Time, reason string) bool {
	if Status(b.Status) == StatusCancelled {
		return false
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	b.CancellationReason = reason
	return true
}
