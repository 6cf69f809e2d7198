package handlers

import (
	"github.com/gin-gonic/gin"

	userdomain "github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type MeHandler struct {
	users userdomain.Repository
}

func NewMeHandler(users userdomain.Repository) *MeHandler {
	return &MeHandler{users: users}
}

type PreferencesRequest struct {
	EmailNotifications *bool `json:"email_notifications" binding:"required"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.Actor(c)

	user, ok := h.load(c, actor.UserID)
	if !ok {
		return
	}

	httpresp.OK(c, gin.H{"user": userView(user, actor.BarberID)})
}

// UpdatePreferences liga/desliga os e-mails de notificação.
func (h *MeHandler) UpdatePreferences(c *gin.Context) {
	actor := middleware.Actor(c)

	var req PreferencesRequest
	if !bindJSON(c, &req) {
		return
	}

	user, ok := h.load(c, actor.UserID)
	if !ok {
		return
	}

	user.EmailNotifications = *req.EmailNotifications
	if err := h.users.UpdateUser(c.Request.Context(), user); err != nil {
		httperr.Internal(c, "failed_to_update_user", "Erro ao atualizar preferências.")
		return
	}

	httpresp.OK(c, gin.H{"user": userView(user, actor.BarberID)})
}

func (h *MeHandler) load(c *gin.Context, id uint) (*models.User, bool) {
	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		if httperr.IsRecordNotFound(err) {
			httperr.Unauthorized(c, "user_not_found", "Usuário não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
		return nil, false
	}
	return user, true
}
