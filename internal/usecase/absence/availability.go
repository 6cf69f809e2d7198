package absence

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/absence"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const displayLayout = "02/01/2006 15:04"

type Availability struct {
	repo  domain.Repository
	clock timezone.Clock
	log   *zap.Logger
}

func NewAvailability(repo domain.Repository, clock timezone.Clock, log *zap.Logger) *Availability {
	return &Availability{repo: repo, clock: clock, log: log}
}

// ApprovedPeriods carrega as ausências aprovadas do barbeiro no fuso da
// barbearia. Registros malformados são ignorados com aviso.
func (uc *Availability) ApprovedPeriods(ctx context.Context, barberID uint) ([]domain.Period, error) {
	reqs, err := uc.repo.List(ctx, domain.Filter{
		BarberID: &barberID,
		Statuses: []domain.Status{domain.StatusApproved},
	})
	if err != nil {
		return nil, err
	}

	return periodsOf(reqs, uc.clock.Now().Location(), uc.log), nil
}

// IsBarberAvailableAt é falso só quando uma ausência aprovada cobre o instante.
func (uc *Availability) IsBarberAvailableAt(ctx context.Context, barberID uint, at time.Time) (bool, error) {
	periods, err := uc.ApprovedPeriods(ctx, barberID)
	if err != nil {
		return false, err
	}

	at = at.In(uc.clock.Now().Location())
	return !domain.AnyCovers(periods, at), nil
}

func periodsOf(reqs []models.AbsenceRequest, loc *time.Location, log *zap.Logger) []domain.Period {
	out := make([]domain.Period, 0, len(reqs))
	for i := range reqs {
		p, err := domain.PeriodOf(&reqs[i])
		if err != nil {
			log.Warn("malformed absence request ignored", zap.Uint("absence_id", reqs[i].ID), zap.Error(err))
			continue
		}
		out = append(out, p.In(loc))
	}
	return out
}
