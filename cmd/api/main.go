package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const (
	slotLockTTL        = 10 * time.Second
	emailLookupTimeout = 3 * time.Second
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	loc := timezone.Location(cfg.Timezone)
	clock := timezone.NewSystemClock(cfg.Timezone)

	// ======================================================
	// 🗄️ BANCO
	// ======================================================
	db, err := dbpkg.NewDB(cfg, zl)
	if err != nil {
		return err
	}
	if err := dbpkg.Migrate(db); err != nil {
		return err
	}

	auditStore := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditStore, zl)
	defer auditDispatcher.Close()

	// ======================================================
	// 📈 MÉTRICAS
	// ======================================================
	var (
		m        *metrics.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(reg)
		gatherer = reg
	}

	// ======================================================
	// 🔒 LOCK + 📬 NOTIFICAÇÕES
	// ======================================================
	var locker lock.Locker = lock.Noop{}
	var sink notification.Sink = notification.NewLogSink(zl)

	if cfg.RedisEnabled() {
		rdb, err := lock.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisLockDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, slotLockTTL)

		if cfg.SMTPEnabled() {
			redisOpt := asynq.RedisClientOpt{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisQueueDB,
			}

			queue := asynq.NewClient(redisOpt)
			defer queue.Close()
			sink = notification.NewQueueSink(queue)

			sender := notification.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
			worker, mux := notification.NewWorker(redisOpt, sender, zl)
			if err := worker.Start(mux); err != nil {
				return err
			}
			defer worker.Shutdown()
		}
	} else {
		zl.Warn("REDIS_ADDR not set: slot locks disabled, notifications only logged")
	}

	notifier := notification.NewNotifier(sink, m, zl)

	// ======================================================
	// 🖼️ STORAGE
	// ======================================================
	var uploader storage.Uploader
	if cfg.S3Enabled() {
		uploader = storage.NewS3Uploader(storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	}

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	app := routes.RegisterRoutes(r, routes.Deps{
		DB:         db,
		Config:     cfg,
		Log:        zl,
		Clock:      clock,
		Location:   loc,
		Metrics:    m,
		Gatherer:   gatherer,
		Locker:     locker,
		Notifier:   notifier,
		Uploader:   uploader,
		Audit:      auditDispatcher,
		AuditStore: auditStore,
		EmailCheck: validators.NewEmailDomainChecker(nil, emailLookupTimeout).Valid,
	})

	// ======================================================
	// ⏰ GERAÇÃO DE TURNOS
	// ======================================================
	horizon := scheduler.NewSlotHorizon(app.Barbers, app.GenerateSlots, clock, cfg.SlotHorizonDays, zl)
	jobs, err := scheduler.Start(cfg.SlotGenerationCron, loc, horizon, zl)
	if err != nil {
		return err
	}
	defer func() { <-jobs.Stop().Done() }()

	go horizon.RunOnce(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
