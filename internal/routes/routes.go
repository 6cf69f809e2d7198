package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAbsence "github.com/BruksfildServices01/barber-booking/internal/usecase/absence"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	ucSlot "github.com/BruksfildServices01/barber-booking/internal/usecase/slot"
)

// Deps são as peças de infraestrutura montadas no main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Clock    timezone.Clock
	Location *time.Location

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Locker   lock.Locker
	Notifier *notification.Notifier
	Uploader storage.Uploader
	Audit    audit.Recorder

	// AuditStore serve a consulta do admin
	AuditStore *audit.Store

	// EmailCheck valida o domínio no cadastro; nil desliga.
	EmailCheck func(string) bool
}

// App expõe o que o main ainda precisa depois de montar as rotas.
type App struct {
	Barbers       *infraRepo.BarberGormRepository
	GenerateSlots *ucSlot.GenerateSlots
}

func RegisterRoutes(r *gin.Engine, d Deps) *App {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	tx := infraRepo.NewTxManager(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	barberRepo := infraRepo.NewBarberGormRepository(d.DB)
	serviceRepo := infraRepo.NewServiceGormRepository(d.DB)
	slotRepo := infraRepo.NewSlotGormRepository(d.DB)
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	absenceRepo := infraRepo.NewAbsenceGormRepository(d.DB)

	// ======================================================
	// 🧠 USE CASES: AUSÊNCIAS
	// ======================================================
	availabilityUC := ucAbsence.NewAvailability(absenceRepo, d.Clock, d.Log)
	submitAbsenceUC := ucAbsence.NewSubmitRequest(tx, absenceRepo, d.Clock, d.Audit, d.Log)
	approveAbsenceUC := ucAbsence.NewApproveRequest(
		tx,
		absenceRepo,
		bookingRepo,
		barberRepo,
		d.Notifier,
		d.Clock,
		d.Audit,
		d.Metrics,
		d.Log,
	)
	rejectAbsenceUC := ucAbsence.NewRejectRequest(tx, absenceRepo, barberRepo, d.Notifier, d.Clock, d.Audit)
	cancelAbsenceUC := ucAbsence.NewCancelRequest(tx, absenceRepo, d.Audit)
	listAbsencesUC := ucAbsence.NewListRequests(absenceRepo)

	// ======================================================
	// 🧠 USE CASES: TURNOS
	// ======================================================
	generateSlotsUC := ucSlot.NewGenerateSlots(barberRepo, slotRepo, d.Metrics, d.Log)
	createSlotUC := ucSlot.NewCreateSlot(barberRepo, slotRepo, d.Audit)
	setSlotStatusUC := ucSlot.NewSetSlotAvailability(tx, slotRepo, bookingRepo, d.Audit)
	deleteSlotUC := ucSlot.NewDeleteSlot(tx, slotRepo, bookingRepo, d.Audit)
	listSlotsUC := ucSlot.NewListSlots(slotRepo, availabilityUC, d.Clock)

	// ======================================================
	// 🧠 USE CASES: RESERVAS
	// ======================================================
	bookingDeps := ucBooking.Deps{
		Tx:       tx,
		Bookings: bookingRepo,
		Slots:    slotRepo,
		Barbers:  barberRepo,
		Services: serviceRepo,
		Users:    userRepo,
		Absences: availabilityUC,
		Locker:   d.Locker,
		Notifier: d.Notifier,
		Clock:    d.Clock,
		Audit:    d.Audit,
		Metrics:  d.Metrics,
		Log:      d.Log,
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userRepo, barberRepo, d.Config, d.Clock, d.EmailCheck, d.Log)
	meHandler := handlers.NewMeHandler(userRepo)
	serviceHandler := handlers.NewServiceHandler(serviceRepo)
	barberHandler := handlers.NewBarberHandler(tx, barberRepo, userRepo, d.Uploader, d.EmailCheck, d.Log)

	slotHandler := handlers.NewSlotHandler(
		generateSlotsUC,
		createSlotUC,
		setSlotStatusUC,
		deleteSlotUC,
		listSlotsUC,
		ucBooking.NewExistsActiveBookingForSlot(bookingRepo),
		d.Location,
	)

	bookingHandler := handlers.NewBookingHandler(
		ucBooking.NewCreateBooking(bookingDeps),
		ucBooking.NewCompleteBooking(bookingDeps),
		ucBooking.NewCancelBooking(bookingDeps),
		ucBooking.NewDeleteBooking(bookingDeps),
		ucBooking.NewListClientBookings(bookingRepo),
		ucBooking.NewListBarberAgenda(bookingRepo),
		d.Location,
	)

	absenceHandler := handlers.NewAbsenceHandler(
		submitAbsenceUC,
		approveAbsenceUC,
		rejectAbsenceUC,
		cancelAbsenceUC,
		listAbsencesUC,
		availabilityUC,
		d.Location,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditStore, d.Location)

	publicLimiter := middleware.NewRateLimiter(d.Config.PublicRateLimit, d.Config.PublicRateBurst)

	// ======================================================
	// 🩺 OPERACIONAL
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		public := api.Group("/")
		public.Use(publicLimiter.Middleware())
		{
			public.POST("/auth/register", authHandler.Register)
			public.POST("/auth/login", authHandler.Login)

			public.GET("/services", serviceHandler.List)
			public.GET("/barbers", barberHandler.ListActive)
			public.GET("/barbers/:id/slots", slotHandler.ListBookable)
			public.GET("/barbers/:id/availability", absenceHandler.Availability)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me/preferences", meHandler.UpdatePreferences)

			// ------------------------------
			// RESERVAS
			// ------------------------------
			secured.POST("/bookings", publicLimiter.Middleware(), middleware.RequireRole(models.RoleClient), bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)

			staff := secured.Group("/")
			staff.Use(middleware.RequireRole(models.RoleBarber, models.RoleAdmin))
			{
				staff.PATCH("/bookings/:id/complete", bookingHandler.Complete)
				staff.GET("/agenda", bookingHandler.AgendaByDate)
				staff.GET("/agenda/month", bookingHandler.AgendaByMonth)

				// ------------------------------
				// TURNOS
				// ------------------------------
				staff.POST("/barbers/:id/slots/generate", slotHandler.Generate)
				staff.POST("/barbers/:id/slots", slotHandler.Create)
				staff.GET("/barbers/:id/slots/all", slotHandler.ListAll)
				staff.PATCH("/slots/:id/status", slotHandler.SetStatus)
				staff.DELETE("/slots/:id", slotHandler.Delete)
				staff.GET("/slots/:id/active-booking", slotHandler.ActiveBooking)

				// ------------------------------
				// AUSÊNCIAS
				// ------------------------------
				staff.GET("/absences", absenceHandler.List)
			}

			barber := secured.Group("/")
			barber.Use(middleware.RequireRole(models.RoleBarber))
			{
				barber.GET("/me/schedule", barberHandler.GetSchedule)
				barber.PUT("/me/schedule", barberHandler.UpdateSchedule)
				barber.POST("/me/photo", barberHandler.UploadPhoto)

				barber.POST("/me/absences", absenceHandler.Submit)
				barber.DELETE("/absences/:id", absenceHandler.Cancel)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/barbers", barberHandler.Create)
				admin.POST("/services", serviceHandler.Create)
				admin.PATCH("/services/:id", serviceHandler.Update)

				admin.DELETE("/bookings/:id", bookingHandler.Delete)

				admin.PATCH("/absences/:id/approve", absenceHandler.Approve)
				admin.PATCH("/absences/:id/reject", absenceHandler.Reject)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}

	return &App{
		Barbers:       barberRepo,
		GenerateSlots: generateSlotsUC,
	}
}
