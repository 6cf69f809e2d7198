package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// mensagens específicas por código; o resto cai no genérico do Kind
var messages = map[string]string{
	"slot_unavailable":        "Horário não está mais disponível, escolha outro.",
	"slot_not_found":          "Horário não encontrado.",
	"slot_already_exists":     "Já existe um horário para este barbeiro neste instante.",
	"slot_has_active_booking": "O horário possui uma reserva ativa.",
	"slot_in_past":            "Não é possível reservar um horário no passado.",
	"barber_absent":           "O barbeiro estará ausente neste horário.",
	"barber_not_found":        "Barbeiro não encontrado.",
	"service_not_found":       "Serviço não encontrado.",
	"booking_not_found":       "Reserva não encontrada.",
	"comments_too_long":       "Comentário deve ter no máximo 100 caracteres.",
	"schedule_not_configured": "O barbeiro não tem horário de trabalho configurado.",
	"absence_overlap":         "Já existe uma solicitação de ausência para esse período.",
	"absence_not_found":       "Solicitação de ausência não encontrada.",
	"absence_in_past":         "A ausência não pode começar no passado.",
	"reason_required":         "Informe o motivo da rejeição.",
	"not_owner":               "Você não tem permissão para esta ação.",
	"invalid_state":           "Operação inválida para o estado atual.",
	"invalid_date_range":      "Intervalo de datas inválido.",
	"invalid_time_range":      "Intervalo de horas inválido.",
	"invalid_status":          "Status inválido.",
	"invalid_slot_duration":   "Duração do turno deve ficar entre 5 e 240 minutos.",
	"invalid_day_off":         "Dia de folga inválido.",
	"invalid_absence_type":    "Tipo de ausência inválido.",
	"missing_dates":           "Informe as datas de início e fim.",
	"missing_hours":           "Informe a data e o intervalo de horas.",
	"slot_barber_mismatch":    "O horário não pertence a este barbeiro.",
}

var kindFallback = map[Kind]struct {
	status  int
	message string
}{
	KindValidation:    {http.StatusBadRequest, "Dados inválidos."},
	KindConflict:      {http.StatusConflict, "Conflito com o estado atual."},
	KindInvalidState:  {http.StatusUnprocessableEntity, "Operação inválida para o estado atual."},
	KindPermission:    {http.StatusForbidden, "Você não tem permissão para esta ação."},
	KindNotFound:      {http.StatusNotFound, "Recurso não encontrado."},
	KindConfiguration: {http.StatusUnprocessableEntity, "Configuração incompleta."},
}

// FromError converte erros de caso de uso na resposta HTTP. Qualquer erro que
// não seja BusinessError vira 500 genérico.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Erro interno. Tente novamente.")
		return
	}

	fb, ok := kindFallback[be.Kind]
	if !ok {
		Internal(c, "internal_error", "Erro interno. Tente novamente.")
		return
	}

	msg, ok := messages[be.Code]
	if !ok {
		msg = fb.message
	}

	Write(c, fb.status, be.Code, msg)
}
