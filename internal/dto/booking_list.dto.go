package dto

import "time"

type BookingListDTO struct {
	ID           uint      `json:"id"`
	SlotID       *uint     `json:"slot_id"`
	SlotDateTime time.Time `json:"slot_date_time"`
	Status       string    `json:"status"`
	Comments     string    `json:"comments,omitempty"`
	ClientName   string    `json:"client_name,omitempty"`
	BarberName   string    `json:"barber_name,omitempty"`
	ServiceName  string    `json:"service_name"`
}
