package absence

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Period é a forma normalizada de uma solicitação de ausência.
// full_day usa StartDate/EndDate (datas inteiras, inclusive);
// specific_hours usa Date + [Start, End).
type Period struct {
	Type Type

	StartDate time.Time
	EndDate   time.Time

	Date  time.Time
	Start calendar.TimeOfDay
	End   calendar.TimeOfDay
}

// PeriodOf valida os campos exigidos pelo tipo e devolve o período.
func PeriodOf(r *models.AbsenceRequest) (Period, error) {
	switch Type(r.Type) {
	case TypeFullDay:
		if r.StartDate == nil || r.EndDate == nil {
			return Period{}, httperr.ErrValidation("missing_dates")
		}
		p := Period{
			Type:      TypeFullDay,
			StartDate: calendar.DateOf(*r.StartDate),
			EndDate:   calendar.DateOf(*r.EndDate),
		}
		if p.EndDate.Before(p.StartDate) {
			return Period{}, httperr.ErrValidation("invalid_date_range")
		}
		return p, nil

	case TypeSpecificHours:
		if r.Date == nil || r.StartTime == nil || r.EndTime == nil {
			return Period{}, httperr.ErrValidation("missing_hours")
		}
		start, err := calendar.ParseClock(*r.StartTime)
		if err != nil {
			return Period{}, httperr.ErrValidation("invalid_time_range")
		}
		end, err := calendar.ParseClock(*r.EndTime)
		if err != nil {
			return Period{}, httperr.ErrValidation("invalid_time_range")
		}
		if start >= end {
			return Period{}, httperr.ErrValidation("invalid_time_range")
		}
		return Period{
			Type:  TypeSpecificHours,
			Date:  calendar.DateOf(*r.Date),
			Start: start,
			End:   end,
		}, nil
	}

	return Period{}, httperr.ErrValidation("invalid_absence_type")
}

// FirstDay é o primeiro dia afetado.
func (p Period) FirstDay() time.Time {
	if p.Type == TypeFullDay {
		return p.StartDate
	}
	return p.Date
}

// Interval devolve o intervalo efetivo [from, to) em instantes.
func (p Period) Interval() (time.Time, time.Time) {
	if p.Type == TypeFullDay {
		return p.StartDate, p.EndDate.AddDate(0, 0, 1)
	}
	return p.Start.On(p.Date), p.End.On(p.Date)
}

// Covers indica se o instante cai dentro da ausência.
func (p Period) Covers(at time.Time) bool {
	if p.Type == TypeFullDay {
		return calendar.DateWithin(at, p.StartDate, p.EndDate)
	}
	if !calendar.SameDate(at, p.Date) {
		return false
	}
	tod := calendar.ClockOf(at)
	return tod >= p.Start && tod < p.End
}

// Overlaps é simétrica. Entre horários específicos do mesmo dia, intervalos
// que apenas se encostam também conflitam.
func Overlaps(a, b Period) bool {
	switch {
	case a.Type == TypeFullDay && b.Type == TypeFullDay:
		return !(a.EndDate.Before(b.StartDate) || a.StartDate.After(b.EndDate))

	case a.Type == TypeSpecificHours && b.Type == TypeSpecificHours:
		return calendar.SameDate(a.Date, b.Date) && a.Start <= b.End && b.Start <= a.End

	case a.Type == TypeFullDay:
		return calendar.DateWithin(b.Date, a.StartDate, a.EndDate)

	default:
		return calendar.DateWithin(a.Date, b.StartDate, b.EndDate)
	}
}

func AnyCovers(periods []Period, at time.Time) bool {
	for _, p := range periods {
		if p.Covers(at) {
			return true
		}
	}
	return false
}

// In reinterpreta as datas do período no fuso loc, mantendo o dia de calendário.
func (p Period) In(loc *time.Location) Period {
	reanchor := func(t time.Time) time.Time {
		if t.IsZero() {
			return t
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
	p.StartDate = reanchor(p.StartDate)
	p.EndDate = reanchor(p.EndDate)
	p.Date = reanchor(p.Date)
	return p
}
