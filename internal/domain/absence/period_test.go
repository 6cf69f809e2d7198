package absence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func date(d int) *time.Time {
	t := time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func hm(s string) *string { return &s }

func fullDay(t *testing.T, from, to int) Period {
	t.Helper()
	p, err := PeriodOf(&models.AbsenceRequest{Type: string(TypeFullDay), StartDate: date(from), EndDate: date(to)})
	require.NoError(t, err)
	return p
}

func hours(t *testing.T, d int, start, end string) Period {
	t.Helper()
	p, err := PeriodOf(&models.AbsenceRequest{Type: string(TypeSpecificHours), Date: date(d), StartTime: hm(start), EndTime: hm(end)})
	require.NoError(t, err)
	return p
}

func TestPeriodOfValidation(t *testing.T) {
	cases := []struct {
		name string
		req  models.AbsenceRequest
		code string
	}{
		{"full day without end", models.AbsenceRequest{Type: string(TypeFullDay), StartDate: date(10)}, "missing_dates"},
		{"full day reversed", models.AbsenceRequest{Type: string(TypeFullDay), StartDate: date(11), EndDate: date(10)}, "invalid_date_range"},
		{"hours without date", models.AbsenceRequest{Type: string(TypeSpecificHours), StartTime: hm("10:00"), EndTime: hm("11:00")}, "missing_hours"},
		{"hours reversed", models.AbsenceRequest{Type: string(TypeSpecificHours), Date: date(10), StartTime: hm("11:00"), EndTime: hm("10:00")}, "invalid_time_range"},
		{"hours empty range", models.AbsenceRequest{Type: string(TypeSpecificHours), Date: date(10), StartTime: hm("11:00"), EndTime: hm("11:00")}, "invalid_time_range"},
		{"hours malformed", models.AbsenceRequest{Type: string(TypeSpecificHours), Date: date(10), StartTime: hm("11h"), EndTime: hm("12:00")}, "invalid_time_range"},
		{"unknown type", models.AbsenceRequest{Type: "vacation"}, "invalid_absence_type"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PeriodOf(&tc.req)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
			assert.True(t, httperr.IsKind(err, httperr.KindValidation))
		})
	}

	single := fullDay(t, 10, 10)
	assert.Equal(t, *date(10), single.StartDate)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Period
		want bool
	}{
		{"full days intersecting", fullDay(t, 10, 12), fullDay(t, 12, 14), true},
		{"full days disjoint", fullDay(t, 10, 11), fullDay(t, 12, 14), false},
		{"full day contains other", fullDay(t, 10, 20), fullDay(t, 12, 13), true},
		{"hours touching boundary", hours(t, 10, "14:00", "15:00"), hours(t, 10, "15:00", "16:00"), true},
		{"hours intersecting", hours(t, 10, "14:00", "15:30"), hours(t, 10, "15:00", "16:00"), true},
		{"hours disjoint", hours(t, 10, "09:00", "10:00"), hours(t, 10, "14:00", "15:00"), false},
		{"hours other day", hours(t, 10, "14:00", "15:00"), hours(t, 11, "14:00", "15:00"), false},
		{"full day covers hours date", fullDay(t, 9, 11), hours(t, 10, "14:00", "15:00"), true},
		{"full day misses hours date", fullDay(t, 11, 12), hours(t, 10, "14:00", "15:00"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.a, tc.b))
			// simetria
			assert.Equal(t, Overlaps(tc.a, tc.b), Overlaps(tc.b, tc.a))
		})
	}
}

func TestOverlapsSymmetryGrid(t *testing.T) {
	periods := []Period{
		fullDay(t, 1, 3), fullDay(t, 3, 3), fullDay(t, 4, 9),
		hours(t, 3, "08:00", "09:00"), hours(t, 3, "09:00", "12:00"),
		hours(t, 5, "13:00", "14:00"), hours(t, 10, "13:00", "14:00"),
	}

	for i := range periods {
		for j := range periods {
			assert.Equal(t, Overlaps(periods[i], periods[j]), Overlaps(periods[j], periods[i]), "i=%d j=%d", i, j)
		}
	}
}

func TestCoversAndInterval(t *testing.T) {
	fd := fullDay(t, 10, 11)
	assert.True(t, fd.Covers(time.Date(2024, 6, 11, 23, 30, 0, 0, time.UTC)))
	assert.False(t, fd.Covers(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)))

	from, to := fd.Interval()
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), to)

	sh := hours(t, 10, "14:00", "15:00")
	assert.True(t, sh.Covers(time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)))
	assert.True(t, sh.Covers(time.Date(2024, 6, 10, 14, 59, 0, 0, time.UTC)))
	assert.False(t, sh.Covers(time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)))
	assert.False(t, sh.Covers(time.Date(2024, 6, 11, 14, 30, 0, 0, time.UTC)))

	from, to = sh.Interval()
	assert.Equal(t, time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC), to)
}
