package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	barberdomain "github.com/BruksfildServices01/barber-booking/internal/domain/barber"
	userdomain "github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type AuthHandler struct {
	users      userdomain.Repository
	barbers    barberdomain.Repository
	config     *config.Config
	clock      timezone.Clock
	emailCheck func(string) bool
	log        *zap.Logger
}

func NewAuthHandler(
	users userdomain.Repository,
	barbers barberdomain.Repository,
	cfg *config.Config,
	clock timezone.Clock,
	emailCheck func(string) bool,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		users:      users,
		barbers:    barbers,
		config:     cfg,
		clock:      clock,
		emailCheck: emailCheck,
		log:        log,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register é o cadastro público: sempre cria cliente.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
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

	user := models.NewUser(strings.TrimSpace(req.Name), email, string(hashed), req.Phone, models.RoleClient)

	if err := h.users.CreateUser(c.Request.Context(), &user); err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_exists", "E-mail já cadastrado.")
			return
		}
		h.log.Error("register failed", zap.Error(err))
		httperr.Internal(c, "failed_to_create_user", "Erro ao criar usuário.")
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, h.config.JWTTTL, &user, 0, h.clock.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	httpresp.Created(c, gin.H{
		"user":  userView(&user, 0),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if httperr.IsRecordNotFound(err) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	var barberID uint
	if user.Role == models.RoleBarber {
		b, err := h.barbers.GetByUserID(c.Request.Context(), user.ID)
		if err != nil && !httperr.IsRecordNotFound(err) {
			httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
			return
		}
		if b != nil {
			barberID = b.ID
		}
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, h.config.JWTTTL, user, barberID, h.clock.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	httpresp.OK(c, gin.H{
		"user":  userView(user, barberID),
		"token": token,
	})
}

func userView(u *models.User, barberID uint) gin.H {
	out := gin.H{
		"id":                  u.ID,
		"name":                u.Name,
		"email":               u.Email,
		"phone":               u.Phone,
		"role":                u.Role,
		"email_notifications": u.EmailNotifications,
	}
	if barberID != 0 {
		out["barber_id"] = barberID
	}
	return out
}
