package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const secret = "routes-secret"

var now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

type server struct {
	t       *testing.T
	db      *gorm.DB
	engine  *gin.Engine
	sink    *notification.MemorySink
	barber  *models.Barber
	service *models.Service
	admin   string
}

func newServer(t *testing.T) *server {
	t.Helper()

	gdb := testutil.NewDB(t)
	log := zap.NewNop()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	sink := &notification.MemorySink{}

	cfg := &config.Config{
		JWTSecret:       secret,
		JWTTTL:          time.Hour,
		PublicRateLimit: 1000,
		PublicRateBurst: 1000,
	}

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:       gdb,
		Config:   cfg,
		Log:      log,
		Clock:    timezone.FixedClock{At: now},
		Location: time.UTC,
		Metrics:  m,
		Gatherer: reg,
		Locker:   lock.Noop{},
		Notifier: notification.NewNotifier(sink, m, log),
		Audit:    audit.Discard{},

		AuditStore: audit.New(gdb),
	})

	admin := testutil.CreateUser(t, gdb, models.RoleAdmin, "admin@shop.test")

	s := &server{
		t:       t,
		db:      gdb,
		engine:  r,
		sink:    sink,
		barber:  testutil.CreateBarber(t, gdb, "joao", nil),
		service: testutil.CreateService(t, gdb, "Corte"),
	}
	s.admin = s.token(admin, 0)
	return s
}

func (s *server) token(u *models.User, barberID uint) string {
	s.t.Helper()
	tok, err := middleware.IssueToken(secret, time.Hour, u, barberID, time.Now())
	require.NoError(s.t, err)
	return tok
}

func (s *server) barberToken() string {
	return s.token(&s.barber.User, s.barber.ID)
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type listBody struct {
	Data  []map[string]any `json:"data"`
	Total int              `json:"total"`
}

type errorBody struct {
	Code string `json:"error_code"`
}

func (s *server) registerClient(email string) string {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Ana",
		"email":    email,
		"password": "secret123",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	return decode[struct {
		Token string `json:"token"`
	}](s.t, w).Token
}

func (s *server) bookablePath() string {
	return fmt.Sprintf("/api/barbers/%d/slots?from=2024-06-03", s.barber.ID)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "barber_http_requests_total")
}

func TestBookingFlowOverHTTP(t *testing.T) {
	s := newServer(t)
	slot := testutil.CreateSlot(t, s.db, s.barber.ID, time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC))

	client := s.registerClient("ana@client.test")
	other := s.registerClient("bia@client.test")

	list := decode[listBody](t, s.do(http.MethodGet, s.bookablePath(), "", nil))
	require.Equal(t, 1, list.Total)

	req := gin.H{"barber_id": s.barber.ID, "service_id": s.service.ID, "slot_id": slot.ID, "comments": "degradê"}

	w := s.do(http.MethodPost, "/api/bookings", client, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := decode[map[string]any](t, w)

	w = s.do(http.MethodPost, "/api/bookings", other, req)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_unavailable", decode[errorBody](t, w).Code)

	list = decode[listBody](t, s.do(http.MethodGet, s.bookablePath(), "", nil))
	assert.Equal(t, 0, list.Total)

	mine := decode[listBody](t, s.do(http.MethodGet, "/api/me/bookings", client, nil))
	require.Equal(t, 1, mine.Total)
	assert.Equal(t, "pending", mine.Data[0]["status"])

	// outro cliente não cancela reserva alheia
	path := fmt.Sprintf("/api/bookings/%v/cancel", booking["id"])
	w = s.do(http.MethodPatch, path, other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPatch, path, client, gin.H{"reason": "imprevisto"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	list = decode[listBody](t, s.do(http.MethodGet, s.bookablePath(), "", nil))
	assert.Equal(t, 1, list.Total)
}

func TestAbsenceApprovalOverHTTP(t *testing.T) {
	s := newServer(t)
	slot := testutil.CreateSlot(t, s.db, s.barber.ID, time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC))
	client := s.registerClient("ana@client.test")

	w := s.do(http.MethodPost, "/api/bookings", client, gin.H{
		"barber_id": s.barber.ID, "service_id": s.service.ID, "slot_id": slot.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/me/absences", s.barberToken(), gin.H{
		"type":       "full_day",
		"start_date": "2024-06-03",
		"end_date":   "2024-06-03",
		"reason":     "consulta médica",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	absence := decode[map[string]any](t, w)

	// ainda pendente: não bloqueia
	avail := fmt.Sprintf("/api/barbers/%d/availability?date=2024-06-03&time=10:00", s.barber.ID)
	assert.Equal(t, true, decode[map[string]any](t, s.do(http.MethodGet, avail, "", nil))["available"])

	path := fmt.Sprintf("/api/admin/absences/%v/approve", absence["id"])
	w = s.do(http.MethodPatch, path, s.barberToken(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPatch, path, s.admin, gin.H{"comment": "ok"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[map[string]any](t, w)
	assert.EqualValues(t, 1, res["cancelled_bookings"])

	assert.Equal(t, false, decode[map[string]any](t, s.do(http.MethodGet, avail, "", nil))["available"])

	// turno continua indisponível e fora da vitrine
	list := decode[listBody](t, s.do(http.MethodGet, s.bookablePath(), "", nil))
	assert.Equal(t, 0, list.Total)

	var kinds []notification.Kind
	for _, m := range s.sink.Messages() {
		kinds = append(kinds, m.Kind)
	}
	assert.Contains(t, kinds, notification.KindBookingVoided)
	assert.Contains(t, kinds, notification.KindAbsenceApproved)
}

func TestRoleGuards(t *testing.T) {
	s := newServer(t)
	client := s.registerClient("ana@client.test")

	w := s.do(http.MethodPost, "/api/admin/services", client, gin.H{"name": "Barba", "duration_min": 20})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/bookings", s.barberToken(), gin.H{"barber_id": 1, "service_id": 1, "slot_id": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/admin/services", s.admin, gin.H{"name": "Barba", "duration_min": 20, "price": 30})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	services := decode[listBody](t, s.do(http.MethodGet, "/api/services", "", nil))
	assert.Equal(t, 2, services.Total)
}

func TestSlotManagementOverHTTP(t *testing.T) {
	s := newServer(t)
	barber := s.barberToken()

	w := s.do(http.MethodPost, fmt.Sprintf("/api/barbers/%d/slots/generate", s.barber.ID), barber, gin.H{
		"from": "2024-06-03",
		"to":   "2024-06-03",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	generated := decode[listBody](t, w)
	// 09:00-18:00 de 30 em 30, sem o almoço das 13h
	assert.Equal(t, 16, generated.Total)

	slotID := generated.Data[0]["id"]

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/slots/%v/status", slotID), barber, gin.H{"status": "unavailable"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	list := decode[listBody](t, s.do(http.MethodGet, s.bookablePath(), "", nil))
	assert.Equal(t, 15, list.Total)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/slots/%v", slotID), barber, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// outro barbeiro não mexe na agenda do João
	pedro := testutil.CreateBarber(t, s.db, "pedro", nil)
	w = s.do(http.MethodPost, fmt.Sprintf("/api/barbers/%d/slots/generate", s.barber.ID), s.token(&pedro.User, pedro.ID), gin.H{
		"from": "2024-06-04",
		"to":   "2024-06-04",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoginAndPreferences(t *testing.T) {
	s := newServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("segredo1"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.db.Model(&models.User{}).Where("id = ?", s.barber.UserID).
		Update("password_hash", string(hash)).Error)

	w := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "joao@barber.test", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "joao@barber.test", "password": "segredo1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode[struct {
		Token string `json:"token"`
	}](t, w).Token

	w = s.do(http.MethodPatch, "/api/me/preferences", token, gin.H{"email_notifications": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	me := decode[struct {
		User map[string]any `json:"user"`
	}](t, s.do(http.MethodGet, "/api/me", token, nil))
	assert.EqualValues(t, s.barber.ID, me.User["barber_id"])
	assert.Equal(t, false, me.User["email_notifications"])
}

func TestAuditLogsListing(t *testing.T) {
	s := newServer(t)
	store := audit.New(s.db)

	bookingID := uint(7)
	require.NoError(t, store.Log(audit.Event{At: now, Action: "booking_created", Entity: "booking", EntityID: &bookingID}))
	require.NoError(t, store.Log(audit.Event{At: now.AddDate(0, 0, 2), Action: "booking_cancelled", Entity: "booking", EntityID: &bookingID}))
	require.NoError(t, store.Log(audit.Event{At: now, Action: "slot_deleted", Entity: "slot"}))

	w := s.do(http.MethodGet, "/api/admin/audit-logs?entity=booking&from=2024-06-01&to=2024-06-01", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode[listBody](t, w)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "booking_created", page.Data[0]["action"])

	w = s.do(http.MethodGet, "/api/admin/audit-logs?entity_id=abc", s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/admin/audit-logs", s.barberToken(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
