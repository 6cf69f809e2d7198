package barber

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 240
)

// Schedule é a agenda semanal do barbeiro já interpretada.
type Schedule struct {
	BarberID     uint
	DayOff       *time.Weekday
	WorkStart    calendar.TimeOfDay
	WorkEnd      calendar.TimeOfDay
	LunchStart   *calendar.TimeOfDay
	LunchEnd     *calendar.TimeOfDay
	SlotDuration time.Duration
}

// ScheduleOf lê a agenda do barbeiro. Campos obrigatórios ausentes geram
// erro de configuração; valores malformados, erro de validação.
func ScheduleOf(b *models.Barber) (Schedule, error) {
	if b.WorkStart == "" || b.WorkEnd == "" || b.SlotDurationMinutes <= 0 {
		return Schedule{}, httperr.ErrConfiguration("schedule_not_configured")
	}

	start, err := calendar.ParseClock(b.WorkStart)
	if err != nil {
		return Schedule{}, httperr.ErrValidation("invalid_time_range")
	}
	end, err := calendar.ParseClock(b.WorkEnd)
	if err != nil {
		return Schedule{}, httperr.ErrValidation("invalid_time_range")
	}

	s := Schedule{
		BarberID:     b.ID,
		WorkStart:    start,
		WorkEnd:      end,
		SlotDuration: time.Duration(b.SlotDurationMinutes) * time.Minute,
	}

	if b.DayOff != nil {
		wd := time.Weekday(*b.DayOff)
		s.DayOff = &wd
	}

	if b.LunchStart != "" && b.LunchEnd != "" {
		ls, err := calendar.ParseClock(b.LunchStart)
		if err != nil {
			return Schedule{}, httperr.ErrValidation("invalid_time_range")
		}
		le, err := calendar.ParseClock(b.LunchEnd)
		if err != nil {
			return Schedule{}, httperr.ErrValidation("invalid_time_range")
		}
		s.LunchStart = &ls
		s.LunchEnd = &le
	}

	return s, nil
}

// Validate é aplicado nas atualizações de perfil; a geração de turnos
// tolera almoço fora do expediente.
func (s Schedule) Validate() error {
	if s.WorkStart >= s.WorkEnd {
		return httperr.ErrValidation("invalid_time_range")
	}

	minutes := int(s.SlotDuration / time.Minute)
	if minutes < MinSlotDurationMinutes || minutes > MaxSlotDurationMinutes {
		return httperr.ErrValidation("invalid_slot_duration")
	}

	if (s.LunchStart == nil) != (s.LunchEnd == nil) {
		return httperr.ErrValidation("invalid_time_range")
	}
	if s.LunchStart != nil && *s.LunchStart >= *s.LunchEnd {
		return httperr.ErrValidation("invalid_time_range")
	}

	if s.DayOff != nil && (*s.DayOff < time.Sunday || *s.DayOff > time.Saturday) {
		return httperr.ErrValidation("invalid_day_off")
	}

	return nil
}

func (s Schedule) IsDayOff(day time.Time) bool {
	return s.DayOff != nil && day.Weekday() == *s.DayOff
}

func (s Schedule) InLunch(t calendar.TimeOfDay) bool {
	if s.LunchStart == nil || s.LunchEnd == nil {
		return false
	}
	return t >= *s.LunchStart && t < *s.LunchEnd
}
