package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zhotheone/nailapp/internal/audit"
	"github.com/zhotheone/nailapp/internal/dto"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/httpresp"
	"github.com/zhotheone/nailapp/internal/models"
	"github.com/zhotheone/nailapp/internal/validators"
)

type ProcedureHandler struct {
	db    *gorm.DB
	audit audit.Recorder
}

func NewProcedureHandler(db *gorm.DB, audit audit.Recorder) *ProcedureHandler {
	return &ProcedureHandler{db: db, audit: audit}
}

func (h *ProcedureHandler) List(c *gin.Context) {
	maxPrice, err := queryFloat(c, "maxPrice")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	q := h.db.WithContext(c.Request.Context())

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(search))
	}
	if maxPrice != nil {
		q = q.Where("price <= ?", *maxPrice)
	}

	var procedures []models.Procedure
	if err := q.Order("name ASC, id ASC").Find(&procedures).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, procedures)
}

func (h *ProcedureHandler) find(c *gin.Context) (*models.Procedure, bool) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}

	var p models.Procedure
	if err := h.db.WithContext(c.Request.Context()).First(&p, id).Error; err != nil {
		if httperr.IsRecordNotFound(err) {
			err = httperr.ErrNotFound("procedure_not_found", "Procedure not found")
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return &p, true
}

func (h *ProcedureHandler) Get(c *gin.Context) {
	p, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, p)
}

func (h *ProcedureHandler) Create(c *gin.Context) {
	var req dto.ProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	var p models.Procedure
	req.Apply(&p)

	if err := h.db.WithContext(c.Request.Context()).Create(&p).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(c, "procedure_created", p.ID)
	httpresp.Created(c, p)
}

func (h *ProcedureHandler) Update(c *gin.Context) {
	p, ok := h.find(c)
	if !ok {
		return
	}

	var req dto.ProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}
	req.Apply(p)

	if err := h.db.WithContext(c.Request.Context()).Save(p).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(c, "procedure_updated", p.ID)
	httpresp.OK(c, p)
}

// Delete leaves existing appointments pointing at the removed procedure.
func (h *ProcedureHandler) Delete(c *gin.Context) {
	p, ok := h.find(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(p).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(c, "procedure_deleted", p.ID)
	httpresp.OK(c, gin.H{"message": "Procedure deleted"})
}

func (h *ProcedureHandler) record(c *gin.Context, action string, id uint) {
	h.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(c.Request.Context()),
		Action:   action,
		Entity:   "procedure",
		EntityID: audit.Ptr(id),
	})
}
