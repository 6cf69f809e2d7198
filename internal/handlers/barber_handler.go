package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/domain"
	barberdomain "github.com/BruksfildServices01/barber-booking/internal/domain/barber"
	userdomain "github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/imaging"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type BarberHandler struct {
	tx         domain.Transactor
	barbers    barberdomain.Repository
	users      userdomain.Repository
	uploader   storage.Uploader // nil quando S3 não está configurado
	emailCheck func(string) bool
	log        *zap.Logger
}

func NewBarberHandler(
	tx domain.Transactor,
	barbers barberdomain.Repository,
	users userdomain.Repository,
	uploader storage.Uploader,
	emailCheck func(string) bool,
	log *zap.Logger,
) *BarberHandler {
	return &BarberHandler{
		tx:         tx,
		barbers:    barbers,
		users:      users,
		uploader:   uploader,
		emailCheck: emailCheck,
		log:        log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CreateBarberRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
}

type UpdateScheduleRequest struct {
	DayOff              *int   `json:"day_off"`
	WorkStart           string `json:"work_start" binding:"required"`
	WorkEnd             string `json:"work_end" binding:"required"`
	LunchStart          string `json:"lunch_start"`
	LunchEnd            string `json:"lunch_end"`
	SlotDurationMinutes int    `json:"slot_duration_minutes" binding:"required"`
}

////////////////////////////////////////////////////////
// PUBLIC
////////////////////////////////////////////////////////

func (h *BarberHandler) ListActive(c *gin.Context) {
	barbers, err := h.barbers.ListActive(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	out := make([]barberView, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, h.view(&b))
	}

	httpresp.List(c, out)
}

////////////////////////////////////////////////////////
// ADMIN
////////////////////////////////////////////////////////

// Create cria o usuário com papel barber e o perfil com a agenda padrão.
func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if h.emailCheck != nil && !h.emailCheck(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
		return
	}

	var barber models.Barber
	err = h.tx.WithinTransaction(c.Request.Context(), func(ctx context.Context) error {
		user := models.NewUser(strings.TrimSpace(req.Name), email, string(hashed), req.Phone, models.RoleBarber)
		if err := h.users.CreateUser(ctx, &user); err != nil {
			return err
		}

		barber = models.NewBarber(user.ID, req.Specialty)
		if err := h.barbers.Create(ctx, &barber); err != nil {
			return err
		}
		barber.User = user
		return nil
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_exists", "E-mail já cadastrado.")
			return
		}
		h.log.Error("create barber failed", zap.Error(err))
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar barbeiro.")
		return
	}

	httpresp.Created(c, barber)
}

////////////////////////////////////////////////////////
// BARBER (/me)
////////////////////////////////////////////////////////

func (h *BarberHandler) GetSchedule(c *gin.Context) {
	b, ok := h.current(c)
	if !ok {
		return
	}
	httpresp.OK(c, b)
}

func (h *BarberHandler) UpdateSchedule(c *gin.Context) {
	b, ok := h.current(c)
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	b.DayOff = req.DayOff
	b.WorkStart = req.WorkStart
	b.WorkEnd = req.WorkEnd
	b.LunchStart = req.LunchStart
	b.LunchEnd = req.LunchEnd
	b.SlotDurationMinutes = req.SlotDurationMinutes

	schedule, err := barberdomain.ScheduleOf(b)
	if err == nil {
		err = schedule.Validate()
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.barbers.Update(c.Request.Context(), b); err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar agenda.")
		return
	}

	httpresp.OK(c, b)
}

// UploadPhoto recebe multipart "photo", converte para WebP e envia ao bucket.
func (h *BarberHandler) UploadPhoto(c *gin.Context) {
	if h.uploader == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_disabled", "Upload de imagens indisponível.")
		return
	}

	b, ok := h.current(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, imaging.MaxUploadBytes+1<<10)

	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Envie uma imagem válida.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Envie uma imagem válida.")
		return
	}
	defer f.Close()

	body, err := imaging.ToWebP(f, imaging.PhotoMaxSide)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedImage) {
			httperr.BadRequest(c, "invalid_image", "Envie uma imagem válida.")
			return
		}
		h.log.Error("encode photo failed", zap.Error(err))
		httperr.Internal(c, "failed_to_process_image", "Erro ao processar imagem.")
		return
	}

	key, err := h.uploader.Put(c.Request.Context(), "barbers", "image/webp", body)
	if err != nil {
		h.log.Error("upload photo failed", zap.Uint("barber_id", b.ID), zap.Error(err))
		httperr.Internal(c, "failed_to_upload_image", "Erro ao enviar imagem.")
		return
	}

	b.PhotoKey = key
	if err := h.barbers.Update(c.Request.Context(), b); err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
		return
	}

	httpresp.OK(c, h.view(b))
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *BarberHandler) current(c *gin.Context) (*models.Barber, bool) {
	actor := middleware.Actor(c)
	if actor.BarberID == 0 {
		httperr.FromError(c, httperr.ErrPermission("not_owner"))
		return nil, false
	}

	b, err := h.barbers.GetByID(c.Request.Context(), actor.BarberID)
	if err != nil {
		if httperr.IsRecordNotFound(err) {
			httperr.FromError(c, httperr.ErrNotFound("barber_not_found"))
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_barber", "Erro ao buscar barbeiro.")
		return nil, false
	}
	return b, true
}

func (h *BarberHandler) view(b *models.Barber) barberView {
	v := barberView{
		ID:        b.ID,
		Name:      b.User.Name,
		Specialty: b.Specialty,
	}
	if b.PhotoKey != "" && h.uploader != nil {
		v.PhotoURL = h.uploader.URL(b.PhotoKey)
	}
	return v
}
