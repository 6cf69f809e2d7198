package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const dateTimeLayout = calendar.DateLayout + " " + calendar.ClockLayout

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// parseDate lê "2006-01-02" no fuso da barbearia.
func parseDate(s string, loc *time.Location) (time.Time, bool) {
	t, err := calendar.ParseDate(s, loc)
	return t, err == nil
}

func parseDateTime(date, clock string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(dateTimeLayout, date+" "+clock, loc)
	return t, err == nil
}

// parseCalendarDate guarda datas de ausência como meia-noite UTC.
func parseCalendarDate(s *string) (*time.Time, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	t, err := calendar.ParseDate(*s, time.UTC)
	if err != nil {
		return nil, false
	}
	return &t, true
}
