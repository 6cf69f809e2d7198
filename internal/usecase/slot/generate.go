package slot

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/domain/barber"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type GenerateSlots struct {
	barbers barber.Repository
	slots   domain.Repository
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewGenerateSlots(
	barbers barber.Repository,
	slots domain.Repository,
	m *metrics.Metrics,
	log *zap.Logger,
) *GenerateSlots {
	return &GenerateSlots{
		barbers: barbers,
		slots:   slots,
		metrics: m,
		log:     log,
	}
}

// Execute cria os turnos da agenda do barbeiro para os dias de [from, to] e
// devolve só os que foram criados agora. Rodar de novo não duplica nada.
func (uc *GenerateSlots) Execute(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Slot, error) {

	if calendar.DateOf(to).Before(calendar.DateOf(from)) {
		return nil, httperr.ErrValidation("invalid_date_range")
	}

	b, err := uc.barbers.GetByID(ctx, barberID)
	if err != nil {
		if httperr.IsRecordNotFound(err) {
			return nil, httperr.ErrNotFound("barber_not_found")
		}
		return nil, err
	}

	schedule, err := barber.ScheduleOf(b)
	if err != nil {
		return nil, err
	}

	log := uc.log.With(zap.Uint("barber_id", barberID))

	var created []models.Slot
	for _, at := range domain.Candidates(schedule, from, to) {
		exists, err := uc.slots.ExistsAt(ctx, barberID, at)
		if err != nil {
			log.Warn("slot lookup failed", zap.Time("date_time", at), zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		s := models.Slot{
			BarberID: barberID,
			DateTime: at,
			Status:   string(domain.StatusAvailable),
		}

		if err := uc.slots.Create(ctx, &s); err != nil {
			// outra geração criou o mesmo turno entre o ExistsAt e o insert
			if httperr.IsUniqueViolation(err) {
				continue
			}
			log.Warn("slot create failed", zap.Time("date_time", at), zap.Error(err))
			continue
		}

		created = append(created, s)
	}

	uc.metrics.SlotsCreated(len(created))
	log.Info("slots generated",
		zap.String("from", from.Format(calendar.DateLayout)),
		zap.String("to", to.Format(calendar.DateLayout)),
		zap.Int("created", len(created)),
	)

	return created, nil
}
