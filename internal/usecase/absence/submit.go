package absence

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	absencedomain "github.com/BruksfildServices01/barber-booking/internal/domain/absence"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type SubmitRequestInput struct {
	BarberID uint
	Type     string

	StartDate *time.Time
	EndDate   *time.Time

	Date      *time.Time
	StartTime *string
	EndTime   *string

	Reason string
}

type SubmitRequest struct {
	tx    domain.Transactor
	repo  absencedomain.Repository
	clock timezone.Clock
	audit audit.Recorder
	log   *zap.Logger
}

func NewSubmitRequest(
	tx domain.Transactor,
	repo absencedomain.Repository,
	clock timezone.Clock,
	rec audit.Recorder,
	log *zap.Logger,
) *SubmitRequest {
	return &SubmitRequest{tx: tx, repo: repo, clock: clock, audit: rec, log: log}
}

func (uc *SubmitRequest) Execute(
	ctx context.Context,
	actor domain.Actor,
	in SubmitRequestInput,
) (*models.AbsenceRequest, error) {

	if !actor.CanManageBarber(in.BarberID) {
		return nil, httperr.ErrPermission("not_owner")
	}

	req := &models.AbsenceRequest{
		BarberID: in.BarberID,
		Type:     in.Type,
		Reason:   strings.TrimSpace(in.Reason),
		Status:   string(absencedomain.StatusPending),
	}
	switch absencedomain.Type(in.Type) {
	case absencedomain.TypeFullDay:
		req.StartDate, req.EndDate = in.StartDate, in.EndDate
	case absencedomain.TypeSpecificHours:
		req.Date, req.StartTime, req.EndTime = in.Date, in.StartTime, in.EndTime
	}

	// --------------------------------------------------
	// 1️⃣ Campos por tipo
	// --------------------------------------------------
	period, err := absencedomain.PeriodOf(req)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	period = period.In(now.Location())

	if period.FirstDay().Before(calendar.DateOf(now)) {
		return nil, httperr.ErrValidation("absence_in_past")
	}

	// --------------------------------------------------
	// 2️⃣ Sobreposição + gravação
	// --------------------------------------------------
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := uc.repo.List(ctx, absencedomain.Filter{
			BarberID: &in.BarberID,
			Statuses: absencedomain.BlockingStatuses,
		})
		if err != nil {
			return err
		}

		for _, other := range periodsOf(existing, now.Location(), uc.log) {
			if absencedomain.Overlaps(period, other) {
				return httperr.ErrConflict("absence_overlap")
			}
		}

		return uc.repo.Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "absence_requested",
		Entity:   "absence_request",
		EntityID: &req.ID,
		Metadata: map[string]string{"type": req.Type},
	})

	return req, nil
}
