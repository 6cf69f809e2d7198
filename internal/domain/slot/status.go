package slot

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
)

func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusUnavailable
}

// CanBook define se um turno aceita uma nova reserva
func CanBook(current Status) error {
	if current != StatusAvailable {
		return httperr.ErrConflict("slot_unavailable")
	}
	return nil
}
