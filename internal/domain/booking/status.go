package booking

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

const MaxCommentsLength = 100

// ActiveStatuses ocupam o turno para fins de dupla reserva e de impacto de ausência.
var ActiveStatuses = []Status{StatusPending, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanCancel define se uma reserva pode ser cancelada
func CanCancel(current Status) error {
	if current != StatusPending {
		return httperr.ErrInvalidState("invalid_state")
	}
	return nil
}

// CanComplete define se uma reserva pode ser concluída
func CanComplete(current Status) error {
	if current != StatusPending {
		return httperr.ErrInvalidState("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
