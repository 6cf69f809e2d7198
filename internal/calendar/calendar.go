// Package calendar reúne os utilitários puros de data e hora do dia usados na
// geração de turnos e nas ausências. Nada aqui consulta relógio ou banco.
package calendar

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// TimeOfDay é a hora do dia em minutos desde a meia-noite.
type TimeOfDay int

func ParseClock(hm string) (TimeOfDay, error) {
	t, err := time.Parse(ClockLayout, hm)
	if err != nil {
		return 0, fmt.Errorf("hora inválida %q: %w", hm, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func ClockOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

// On fixa a hora na data de day, no fuso de day.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), int(t)/60, int(t)%60, 0, 0, day.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// DateOf trunca t para a meia-noite do mesmo dia.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Days lista os dias de [from, to], com as duas pontas.
func Days(from, to time.Time) []time.Time {
	start := DateOf(from)
	end := DateOf(to)
	if end.Before(start) {
		return nil
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DateWithin: a data de t está em [from, to].
func DateWithin(t, from, to time.Time) bool {
	d := DateOf(t)
	return !d.Before(DateOf(from)) && !d.After(DateOf(to))
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}
