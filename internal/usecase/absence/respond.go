package absence

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	absencedomain "github.com/BruksfildServices01/barber-booking/internal/domain/absence"
	"github.com/BruksfildServices01/barber-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ApprovalResult resume o efeito da aprovação. Notified conta só os avisos
// aceitos pelo sink.
type ApprovalResult struct {
	Request   *models.AbsenceRequest
	Cancelled []models.Booking
	Notified  int
}

// ======================================================
// APPROVE
// ======================================================

type ApproveRequest struct {
	tx       domain.Transactor
	repo     absencedomain.Repository
	bookings booking.Repository
	barbers  barber.Repository
	notifier *notification.Notifier
	clock    timezone.Clock
	audit    audit.Recorder
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewApproveRequest(
	tx domain.Transactor,
	repo absencedomain.Repository,
	bookings booking.Repository,
	barbers barber.Repository,
	notifier *notification.Notifier,
	clock timezone.Clock,
	rec audit.Recorder,
	m *metrics.Metrics,
	log *zap.Logger,
) *ApproveRequest {
	return &ApproveRequest{
		tx:       tx,
		repo:     repo,
		bookings: bookings,
		barbers:  barbers,
		notifier: notifier,
		clock:    clock,
		audit:    rec,
		metrics:  m,
		log:      log,
	}
}

// Execute aprova a ausência e cancela, na mesma transação, as reservas
// pendentes ou concluídas do barbeiro dentro do período. Os turnos dessas
// reservas ficam como estão. Avisos saem depois do commit.
func (uc *ApproveRequest) Execute(
	ctx context.Context,
	requestID uint,
	reviewerID uint,
	comment string,
) (*ApprovalResult, error) {

	now := uc.clock.Now()
	res := &ApprovalResult{}

	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := uc.repo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if httperr.IsRecordNotFound(err) {
				return httperr.ErrNotFound("absence_not_found")
			}
			return err
		}

		if err := absencedomain.CanRespond(absencedomain.Status(req.Status)); err != nil {
			return err
		}

		period, err := absencedomain.PeriodOf(req)
		if err != nil {
			return err
		}
		from, to := period.In(now.Location()).Interval()

		// reservas novas do barbeiro esperam o fim da cascata
		if _, err := uc.barbers.GetByIDForUpdate(ctx, req.BarberID); err != nil {
			return err
		}

		affected, err := uc.bookings.ListForBarber(ctx, req.BarberID, from, to, booking.ActiveStatuses)
		if err != nil {
			return err
		}

		reason := cancellationReason(req.Reason)
		for i := range affected {
			b := &affected[i]
			if !booking.CancelForAbsence(b, now, reason) {
				continue
			}
			if err := uc.bookings.Update(ctx, b); err != nil {
				return err
			}
			res.Cancelled = append(res.Cancelled, *b)
		}

		req.Status = string(absencedomain.StatusApproved)
		req.RespondedAt = &now
		req.ReviewerID = &reviewerID
		req.ReviewComment = strings.TrimSpace(comment)

		if err := uc.repo.Update(ctx, req); err != nil {
			return err
		}

		res.Request = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	log := uc.log.With(zap.Uint("absence_id", requestID), zap.Uint("barber_id", res.Request.BarberID))

	// --------------------------------------------------
	// Avisos (melhor esforço)
	// --------------------------------------------------
	b, err := uc.barbers.GetByID(ctx, res.Request.BarberID)
	if err != nil {
		log.Warn("barber lookup for notifications failed", zap.Error(err))
		b = &models.Barber{}
	}

	for i := range res.Cancelled {
		bk := &res.Cancelled[i]
		ok := uc.notifier.Send(ctx, &bk.Client, notification.KindBookingVoided, map[string]string{
			"barber":    b.User.Name,
			"date_time": bk.SlotDateTime.In(now.Location()).Format(displayLayout),
			"reason":    res.Request.Reason,
		})
		if ok {
			res.Notified++
		}
	}

	uc.notifier.Send(ctx, &b.User, notification.KindAbsenceApproved, map[string]string{
		"cancelled_bookings": strconv.Itoa(len(res.Cancelled)),
		"comment":            res.Request.ReviewComment,
	})

	uc.metrics.AbsenceApproved(len(res.Cancelled))
	uc.audit.Dispatch(audit.Event{
		UserID:   &reviewerID,
		Action:   "absence_approved",
		Entity:   "absence_request",
		EntityID: &res.Request.ID,
		Metadata: map[string]int{
			"cancelled": len(res.Cancelled),
			"notified":  res.Notified,
		},
	})

	log.Info("absence approved",
		zap.Int("cancelled", len(res.Cancelled)),
		zap.Int("notified", res.Notified),
	)

	return res, nil
}

func cancellationReason(absenceReason string) string {
	if absenceReason == "" {
		return "Barbeiro ausente"
	}
	return "Barbeiro ausente: " + absenceReason
}

// ======================================================
// REJECT
// ======================================================

type RejectRequest struct {
	tx       domain.Transactor
	repo     absencedomain.Repository
	barbers  barber.Repository
	notifier *notification.Notifier
	clock    timezone.Clock
	audit    audit.Recorder
}

func NewRejectRequest(
	tx domain.Transactor,
	repo absencedomain.Repository,
	barbers barber.Repository,
	notifier *notification.Notifier,
	clock timezone.Clock,
	rec audit.Recorder,
) *RejectRequest {
	return &RejectRequest{
		tx:       tx,
		repo:     repo,
		barbers:  barbers,
		notifier: notifier,
		clock:    clock,
		audit:    rec,
	}
}

func (uc *RejectRequest) Execute(
	ctx context.Context,
	requestID uint,
	reviewerID uint,
	reason string,
) (*models.AbsenceRequest, error) {

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, httperr.ErrValidation("reason_required")
	}

	now := uc.clock.Now()

	var req *models.AbsenceRequest
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		req, err = uc.repo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if httperr.IsRecordNotFound(err) {
				return httperr.ErrNotFound("absence_not_found")
			}
			return err
		}

		if err := absencedomain.CanRespond(absencedomain.Status(req.Status)); err != nil {
			return err
		}

		req.Status = string(absencedomain.StatusRejected)
		req.RespondedAt = &now
		req.ReviewerID = &reviewerID
		req.RejectionReason = reason

		return uc.repo.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	if b, err := uc.barbers.GetByID(ctx, req.BarberID); err == nil {
		uc.notifier.Send(ctx, &b.User, notification.KindAbsenceRejected, map[string]string{
			"reason": reason,
		})
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &reviewerID,
		Action:   "absence_rejected",
		Entity:   "absence_request",
		EntityID: &req.ID,
	})

	return req, nil
}
