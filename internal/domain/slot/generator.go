package slot

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/domain/barber"
)

// Candidates lista os instantes que a agenda oferece em [from, to]:
// pula a folga semanal, passos de SlotDuration de WorkStart até o último
// início que ainda termina dentro do expediente, e pula o almoço [início, fim).
func Candidates(s barber.Schedule, from, to time.Time) []time.Time {
	if s.SlotDuration <= 0 {
		return nil
	}

	var out []time.Time
	for _, day := range calendar.Days(from, to) {
		if s.IsDayOff(day) {
			continue
		}

		for t := s.WorkStart; t.Add(s.SlotDuration) <= s.WorkEnd; t = t.Add(s.SlotDuration) {
			if s.InLunch(t) {
				continue
			}
			out = append(out, t.On(day))
		}
	}

	return out
}
