package absence

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	absencedomain "github.com/BruksfildServices01/barber-booking/internal/domain/absence"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CancelRequest struct {
	tx    domain.Transactor
	repo  absencedomain.Repository
	audit audit.Recorder
}

func NewCancelRequest(tx domain.Transactor, repo absencedomain.Repository, rec audit.Recorder) *CancelRequest {
	return &CancelRequest{tx: tx, repo: repo, audit: rec}
}

// Execute apaga uma solicitação ainda pendente; só o próprio barbeiro pode.
func (uc *CancelRequest) Execute(ctx context.Context, actor domain.Actor, requestID uint) error {
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := uc.repo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if httperr.IsRecordNotFound(err) {
				return httperr.ErrNotFound("absence_not_found")
			}
			return err
		}

		if !actor.IsBarber(req.BarberID) {
			return httperr.ErrPermission("not_owner")
		}

		if err := absencedomain.CanRespond(absencedomain.Status(req.Status)); err != nil {
			return err
		}

		return uc.repo.Delete(ctx, req.ID)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "absence_cancelled",
		Entity:   "absence_request",
		EntityID: &requestID,
	})

	return nil
}

type ListRequests struct {
	repo absencedomain.Repository
}

func NewListRequests(repo absencedomain.Repository) *ListRequests {
	return &ListRequests{repo: repo}
}

// Execute: barbeiro vê só as próprias; admin filtra à vontade.
func (uc *ListRequests) Execute(
	ctx context.Context,
	actor domain.Actor,
	barberID *uint,
	statuses []absencedomain.Status,
) ([]models.AbsenceRequest, error) {

	for _, s := range statuses {
		if !s.Valid() {
			return nil, httperr.ErrValidation("invalid_status")
		}
	}

	if !actor.IsAdmin() {
		if actor.BarberID == 0 {
			return nil, httperr.ErrPermission("not_owner")
		}
		if barberID != nil && *barberID != actor.BarberID {
			return nil, httperr.ErrPermission("not_owner")
		}
		own := actor.BarberID
		barberID = &own
	}

	return uc.repo.List(ctx, absencedomain.Filter{BarberID: barberID, Statuses: statuses})
}
