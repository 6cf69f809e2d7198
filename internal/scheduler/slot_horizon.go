package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type SlotGenerator interface {
	Execute(ctx context.Context, barberID uint, from, to time.Time) ([]models.Slot, error)
}

type BarberLister interface {
	ListActive(ctx context.Context) ([]models.Barber, error)
}

// SlotHorizon mantém turnos gerados de hoje até hoje+Days para todo barbeiro
// ativo. A geração é idempotente, então rodar a mais não tem efeito.
type SlotHorizon struct {
	barbers   BarberLister
	generator SlotGenerator
	clock     timezone.Clock
	days      int
	timeout   time.Duration
	log       *zap.Logger
}

func NewSlotHorizon(
	barbers BarberLister,
	generator SlotGenerator,
	clock timezone.Clock,
	days int,
	log *zap.Logger,
) *SlotHorizon {
	return &SlotHorizon{
		barbers:   barbers,
		generator: generator,
		clock:     clock,
		days:      days,
		timeout:   5 * time.Minute,
		log:       log,
	}
}

// Run implementa cron.Job.
func (j *SlotHorizon) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	j.RunOnce(ctx)
}

// RunOnce devolve quantos turnos foram criados. Erro de um barbeiro não
// interrompe os demais.
func (j *SlotHorizon) RunOnce(ctx context.Context) int {
	barbers, err := j.barbers.ListActive(ctx)
	if err != nil {
		j.log.Error("slot horizon: list barbers failed", zap.Error(err))
		return 0
	}

	from := calendar.DateOf(j.clock.Now())
	to := from.AddDate(0, 0, j.days)

	total := 0
	for _, b := range barbers {
		created, err := j.generator.Execute(ctx, b.ID, from, to)
		if err != nil {
			j.log.Warn("slot horizon: barber skipped", zap.Uint("barber_id", b.ID), zap.Error(err))
			continue
		}
		total += len(created)
	}

	j.log.Info("slot horizon done",
		zap.Int("barbers", len(barbers)),
		zap.Int("created", total),
		zap.String("until", to.Format(calendar.DateLayout)),
	)
	return total
}

// Start agenda o job no fuso informado e já inicia o cron. Chame Stop no
// shutdown.
func Start(expr string, loc *time.Location, job cron.Job, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cronLogger{log}), cron.SkipIfStillRunning(cronLogger{log})),
	)

	if _, err := c.AddJob(expr, job); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}

// cronLogger adapta zap para a interface cron.Logger.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().With(zap.Error(err)).Errorw(msg, keysAndValues...)
}
