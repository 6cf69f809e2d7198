package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	slotdomain "github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	ucSlot "github.com/BruksfildServices01/barber-booking/internal/usecase/slot"
)

type SlotHandler struct {
	generate  *ucSlot.GenerateSlots
	create    *ucSlot.CreateSlot
	setStatus *ucSlot.SetSlotAvailability
	delete    *ucSlot.DeleteSlot
	list      *ucSlot.ListSlots
	booked    *ucBooking.ExistsActiveBookingForSlot
	loc       *time.Location
}

func NewSlotHandler(
	generate *ucSlot.GenerateSlots,
	create *ucSlot.CreateSlot,
	setStatus *ucSlot.SetSlotAvailability,
	del *ucSlot.DeleteSlot,
	list *ucSlot.ListSlots,
	booked *ucBooking.ExistsActiveBookingForSlot,
	loc *time.Location,
) *SlotHandler {
	return &SlotHandler{
		generate:  generate,
		create:    create,
		setStatus: setStatus,
		delete:    del,
		list:      list,
		booked:    booked,
		loc:       loc,
	}
}

// --------- Requests ---------

type GenerateSlotsRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

type CreateSlotRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type SlotStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --------- Handlers ---------

func (h *SlotHandler) Generate(c *gin.Context) {
	barberID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if !middleware.Actor(c).CanManageBarber(barberID) {
		httperr.FromError(c, httperr.ErrPermission("not_owner"))
		return
	}

	var req GenerateSlotsRequest
	if !bindJSON(c, &req) {
		return
	}

	from, ok1 := parseDate(req.From, h.loc)
	to, ok2 := parseDate(req.To, h.loc)
	if !ok1 || !ok2 {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	created, err := h.generate.Execute(c.Request.Context(), barberID, from, to)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, httpresp.ListResponse[slotView]{
		Data:  slotViews(created),
		Total: len(created),
	})
}

func (h *SlotHandler) Create(c *gin.Context) {
	barberID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CreateSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	at, ok := parseDateTime(req.Date, req.Time, h.loc)
	if !ok {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	s, err := h.create.Execute(c.Request.Context(), middleware.Actor(c), barberID, at)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, s)
}

func (h *SlotHandler) SetStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req SlotStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.setStatus.Execute(c.Request.Context(), middleware.Actor(c), id, slotdomain.Status(req.Status))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *SlotHandler) Delete(c *gin.Context) {
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

// ListBookable é a vitrine pública: só o que o cliente pode reservar.
func (h *SlotHandler) ListBookable(c *gin.Context) {
	h.listFor(c, true)
}

// ListAll mostra a agenda completa do barbeiro (com ?status=).
func (h *SlotHandler) ListAll(c *gin.Context) {
	h.listFor(c, false)
}

func (h *SlotHandler) listFor(c *gin.Context, bookable bool) {
	barberID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if !bookable && !middleware.Actor(c).CanManageBarber(barberID) {
		httperr.FromError(c, httperr.ErrPermission("not_owner"))
		return
	}

	from, ok1 := parseDate(c.Query("from"), h.loc)
	to, ok2 := parseDate(c.DefaultQuery("to", c.Query("from")), h.loc)
	if !ok1 || !ok2 {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	in := ucSlot.ListSlotsInput{
		BarberID: barberID,
		From:     from,
		To:       to,
		Bookable: bookable,
	}
	if raw := c.Query("status"); raw != "" && !bookable {
		st := slotdomain.Status(raw)
		if !st.Valid() {
			httperr.BadRequest(c, "invalid_status", "Status inválido.")
			return
		}
		in.Status = &st
	}

	slots, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slotViews(slots))
}

// ActiveBooking responde se o turno tem reserva pendente.
func (h *SlotHandler) ActiveBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	exists, err := h.booked.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"slot_id": id, "has_active_booking": exists})
}
