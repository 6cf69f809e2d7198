package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
)

// AuditLogsHandler expõe a trilha de auditoria para o admin.
type AuditLogsHandler struct {
	store *audit.Store
	loc   *time.Location
}

func NewAuditLogsHandler(store *audit.Store, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{store: store, loc: loc}
}

// GET /admin/audit-logs?action=&entity=&entity_id=&user_id=&from=&to=&page=&limit=
func (h *AuditLogsHandler) List(c *gin.Context) {
	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}
	f.Page, _ = strconv.Atoi(c.Query("page"))
	f.Limit, _ = strconv.Atoi(c.Query("limit"))

	var ok bool
	if f.EntityID, ok = optionalID(c, "entity_id"); !ok {
		return
	}
	if f.UserID, ok = optionalID(c, "user_id"); !ok {
		return
	}

	if s := c.Query("from"); s != "" {
		from, err := calendar.ParseDate(s, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		f.From = &from
	}

	// "to" é inclusivo para quem consulta
	if s := c.Query("to"); s != "" {
		to, err := calendar.ParseDate(s, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		to = to.AddDate(0, 0, 1)
		f.To = &to
	}

	f.Normalize()
	logs, total, err := h.store.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, logs, total, f.Page, f.Limit)
}

func optionalID(c *gin.Context, key string) (*uint, bool) {
	s := c.Query(key)
	if s == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return nil, false
	}
	v := uint(id)
	return &v, true
}
