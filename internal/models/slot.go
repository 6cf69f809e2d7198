package models

import "time"

type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint      `gorm:"not null;uniqueIndex:idx_slot_barber_datetime" json:"barber_id"`
	DateTime time.Time `gorm:"not null;uniqueIndex:idx_slot_barber_datetime" json:"date_time"`
	Status   string    `gorm:"size:20;not null;default:'available';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
