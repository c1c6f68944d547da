package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/httpresp"
	"github.com/zhotheone/nailapp/internal/models"
	"github.com/zhotheone/nailapp/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if page <= 0 {
		page = 1
	}

	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if raw := c.Query("from"); raw != "" {
		from, err := timezone.ParseDate(raw, h.loc)
		if err != nil {
			httperr.Respond(c, httperr.ErrValidation("invalid_from", "from must be YYYY-MM-DD"))
			return
		}
		q = q.Where("created_at >= ?", from.UTC())
	}
	if raw := c.Query("to"); raw != "" {
		to, err := timezone.ParseDate(raw, h.loc)
		if err != nil {
			httperr.Respond(c, httperr.ErrValidation("invalid_to", "to must be YYYY-MM-DD"))
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1).UTC())
	}

	// --------------------------------------------------
	// Total + page
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, page, limit, total, logs)
}
