package absence

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

type Type string

const (
	TypeFullDay       Type = "full_day"
	TypeSpecificHours Type = "specific_hours"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// BlockingStatuses entram na checagem de sobreposição.
var BlockingStatuses = []Status{StatusPending, StatusApproved}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func CanRespond(current Status) error {
	if current != StatusPending {
		return httperr.ErrInvalidState("invalid_state")
	}
	return nil
}
