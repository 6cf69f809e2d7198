package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"not null;index" json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	BarberID uint   `gorm:"not null;index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"barber"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	// Referência fraca: a reserva sobrevive à exclusão do turno.
	SlotID *uint `gorm:"index" json:"slot_id"`
	Slot   *Slot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	BookedAt     time.Time `json:"booked_at"`
	SlotDateTime time.Time `gorm:"not null;index" json:"slot_date_time"`

	Status   string `gorm:"size:20;not null;default:'pending'" json:"status"`
	Comments string `gorm:"size:100" json:"comments"`

	CancellationReason string     `gorm:"size:255" json:"cancellation_reason"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CompletedAt        *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
