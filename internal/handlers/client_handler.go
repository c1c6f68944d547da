package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zhotheone/nailapp/internal/audit"
	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
	"github.com/zhotheone/nailapp/internal/dto"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/httpresp"
	"github.com/zhotheone/nailapp/internal/models"
	"github.com/zhotheone/nailapp/internal/validators"
)

type ClientHandler struct {
	db        *gorm.DB
	reminders domain.Reminders
	audit     audit.Recorder
}

func NewClientHandler(db *gorm.DB, reminders domain.Reminders, audit audit.Recorder) *ClientHandler {
	return &ClientHandler{db: db, reminders: reminders, audit: audit}
}

func errClientNotFound() error {
	return httperr.ErrNotFound("client_not_found", "Client not found")
}

// ======================================================
// LIST
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	minRating, err := queryInt(c, "minRating", 0)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	q := h.db.WithContext(c.Request.Context())

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := likePattern(search)
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(sur_name) LIKE ? OR phone_num LIKE ?",
			like, like, like,
		)
	}
	if minRating > 0 {
		q = q.Where("trust_rating >= ?", minRating)
	}

	var clients []models.Client
	if err := q.Order("sur_name ASC, name ASC, id ASC").Find(&clients).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// GET / CREATE / UPDATE
// ======================================================

func (h *ClientHandler) find(c *gin.Context) (*models.Client, bool) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		if httperr.IsRecordNotFound(err) {
			err = errClientNotFound()
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return &client, true
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	var client models.Client
	req.Apply(&client)

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(c, "client_created", client.ID)
	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	client, ok := h.find(c)
	if !ok {
		return
	}

	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}
	req.Apply(client)

	if err := h.db.WithContext(c.Request.Context()).Save(client).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(c, "client_updated", client.ID)
	httpresp.OK(c, client)
}

// ======================================================
// DELETE (cascades to appointments)
// ======================================================

func (h *ClientHandler) Delete(c *gin.Context) {
	client, ok := h.find(c)
	if !ok {
		return
	}

	var appointmentIDs []uint
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).
			Where("client_id = ?", client.ID).
			Pluck("id", &appointmentIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", client.ID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Delete(client).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	for _, id := range appointmentIDs {
		h.reminders.Cancel(id)
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(c.Request.Context()),
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: audit.Ptr(client.ID),
		Metadata: map[string]any{"appointmentsDeleted": len(appointmentIDs)},
	})

	httpresp.OK(c, gin.H{
		"message":             "Client deleted",
		"appointmentsDeleted": len(appointmentIDs),
	})
}

func (h *ClientHandler) record(c *gin.Context, action string, id uint) {
	h.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(c.Request.Context()),
		Action:   action,
		Entity:   "client",
		EntityID: audit.Ptr(id),
	})
}
