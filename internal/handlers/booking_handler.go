package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create   *ucBooking.CreateBooking
	complete *ucBooking.CompleteBooking
	cancel   *ucBooking.CancelBooking
	delete   *ucBooking.DeleteBooking
	history  *ucBooking.ListClientBookings
	agenda   *ucBooking.ListBarberAgenda
	loc      *time.Location
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	complete *ucBooking.CompleteBooking,
	cancel *ucBooking.CancelBooking,
	del *ucBooking.DeleteBooking,
	history *ucBooking.ListClientBookings,
	agenda *ucBooking.ListBarberAgenda,
	loc *time.Location,
) *BookingHandler {
	return &BookingHandler{
		create:   create,
		complete: complete,
		cancel:   cancel,
		delete:   del,
		history:  history,
		agenda:   agenda,
		loc:      loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	SlotID    uint   `json:"slot_id" binding:"required"`
	Comments  string `json:"comments"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	bk, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ClientID:  c.GetUint(middleware.ContextUserID),
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		SlotID:    req.SlotID,
		Comments:  req.Comments,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, bk)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *BookingHandler) Complete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	bk, err := h.complete.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, bk)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	// corpo opcional
	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	bk, err := h.cancel.Execute(c.Request.Context(), middleware.Actor(c), id, req.Reason)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, bk)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.Actor(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// LISTS
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	list, err := h.history.Execute(c.Request.Context(), c.GetUint(middleware.ContextUserID))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, list)
}

// agendaBarber: barbeiro vê a própria agenda; admin informa ?barber_id=.
func (h *BookingHandler) agendaBarber(c *gin.Context) (uint, bool) {
	actor := middleware.Actor(c)
	if raw := c.Query("barber_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
			return 0, false
		}
		return uint(id), true
	}
	return actor.BarberID, true
}

func (h *BookingHandler) AgendaByDate(c *gin.Context) {
	barberID, ok := h.agendaBarber(c)
	if !ok {
		return
	}

	day, ok := parseDate(c.Query("date"), h.loc)
	if !ok {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	list, err := h.agenda.ByDate(c.Request.Context(), middleware.Actor(c), barberID, day)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *BookingHandler) AgendaByMonth(c *gin.Context) {
	barberID, ok := h.agendaBarber(c)
	if !ok {
		return
	}

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_date", "Ano ou mês inválido.")
		return
	}

	list, err := h.agenda.ByMonth(c.Request.Context(), middleware.Actor(c), barberID, year, month, h.loc)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, list)
}
