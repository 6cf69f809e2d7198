package models

import "time"

// Defaults de agenda aplicados quando o barbeiro é criado.
const (
	DefaultWorkStart           = "09:00"
	DefaultWorkEnd             = "18:00"
	DefaultLunchStart          = "13:00"
	DefaultLunchEnd            = "14:00"
	DefaultSlotDurationMinutes = 30
	DefaultDayOff              = int(time.Sunday)
)

type Barber struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Specialty string `gorm:"size:100" json:"specialty"`
	PhotoKey  string `gorm:"size:255" json:"photo_key"`
	Active    bool   `gorm:"default:true" json:"active"`

	// Agenda semanal. Horários no formato "15:04"; DayOff é o time.Weekday.
	DayOff              *int   `json:"day_off"`
	WorkStart           string `gorm:"size:5" json:"work_start"`
	WorkEnd             string `gorm:"size:5" json:"work_end"`
	LunchStart          string `gorm:"size:5" json:"lunch_start"`
	LunchEnd            string `gorm:"size:5" json:"lunch_end"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBarber(userID uint, specialty string) Barber {
	dayOff := DefaultDayOff
	return Barber{
		UserID:              userID,
		Specialty:           specialty,
		Active:              true,
		DayOff:              &dayOff,
		WorkStart:           DefaultWorkStart,
		WorkEnd:             DefaultWorkEnd,
		LunchStart:          DefaultLunchStart,
		LunchEnd:            DefaultLunchEnd,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
	}
}
