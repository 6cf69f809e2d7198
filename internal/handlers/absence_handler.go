package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	absencedomain "github.com/BruksfildServices01/barber-booking/internal/domain/absence"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAbsence "github.com/BruksfildServices01/barber-booking/internal/usecase/absence"
)

type AbsenceHandler struct {
	submit       *ucAbsence.SubmitRequest
	approve      *ucAbsence.ApproveRequest
	reject       *ucAbsence.RejectRequest
	cancel       *ucAbsence.CancelRequest
	list         *ucAbsence.ListRequests
	availability *ucAbsence.Availability
	loc          *time.Location
}

func NewAbsenceHandler(
	submit *ucAbsence.SubmitRequest,
	approve *ucAbsence.ApproveRequest,
	reject *ucAbsence.RejectRequest,
	cancel *ucAbsence.CancelRequest,
	list *ucAbsence.ListRequests,
	availability *ucAbsence.Availability,
	loc *time.Location,
) *AbsenceHandler {
	return &AbsenceHandler{
		submit:       submit,
		approve:      approve,
		reject:       reject,
		cancel:       cancel,
		list:         list,
		availability: availability,
		loc:          loc,
	}
}

// --------- Requests ---------

type SubmitAbsenceRequest struct {
	Type string `json:"type" binding:"required"`

	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`

	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`

	Reason string `json:"reason" binding:"required"`
}

type RespondAbsenceRequest struct {
	Comment string `json:"comment"`
}

// --------- Handlers ---------

// Submit: POST /me/absences. O barbeiro vem do token.
func (h *AbsenceHandler) Submit(c *gin.Context) {
	actor := middleware.Actor(c)
	if actor.BarberID == 0 {
		httperr.FromError(c, httperr.ErrPermission("not_owner"))
		return
	}

	var req SubmitAbsenceRequest
	if !bindJSON(c, &req) {
		return
	}

	start, ok1 := parseCalendarDate(req.StartDate)
	end, ok2 := parseCalendarDate(req.EndDate)
	day, ok3 := parseCalendarDate(req.Date)
	if !ok1 || !ok2 || !ok3 {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.submit.Execute(c.Request.Context(), actor, ucAbsence.SubmitRequestInput{
		BarberID:  actor.BarberID,
		Type:      req.Type,
		StartDate: start,
		EndDate:   end,
		Date:      day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, out)
}

// List: ?status=pending,approved e, para admin, ?barber_id=.
func (h *AbsenceHandler) List(c *gin.Context) {
	actor := middleware.Actor(c)

	var barberID *uint
	if raw := c.Query("barber_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
			return
		}
		v := uint(id)
		barberID = &v
	}

	var statuses []absencedomain.Status
	for _, s := range strings.Split(c.Query("status"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			statuses = append(statuses, absencedomain.Status(s))
		}
	}

	out, err := h.list.Execute(c.Request.Context(), actor, barberID, statuses)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AbsenceHandler) Approve(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RespondAbsenceRequest
	// corpo opcional
	_ = c.ShouldBindJSON(&req)

	res, err := h.approve.Execute(c.Request.Context(), id, middleware.Actor(c).UserID, req.Comment)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"request":               res.Request,
		"cancelled_bookings":    len(res.Cancelled),
		"cancelled_booking_ids": bookingIDs(res),
		"notifications_sent":    res.Notified,
	})
}

func (h *AbsenceHandler) Reject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RespondAbsenceRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.reject.Execute(c.Request.Context(), id, middleware.Actor(c).UserID, req.Comment)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *AbsenceHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), middleware.Actor(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// Availability: GET /barbers/:id/availability?date=2024-06-10&time=10:00
func (h *AbsenceHandler) Availability(c *gin.Context) {
	barberID, ok := paramID(c, "id")
	if !ok {
		return
	}

	at, ok := parseDateTime(c.Query("date"), c.Query("time"), h.loc)
	if !ok {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	available, err := h.availability.IsBarberAvailableAt(c.Request.Context(), barberID, at)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"barber_id": barberID,
		"date_time": at,
		"available": available,
	})
}

func bookingIDs(res *ucAbsence.ApprovalResult) []uint {
	ids := make([]uint, 0, len(res.Cancelled))
	for _, b := range res.Cancelled {
		ids = append(ids, b.ID)
	}
	return ids
}
