package handler

import (
	auditapp "github.com/goldshop/backend/internal/application/audit"
	"github.com/goldshop/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// AuditHandler handles audit trail API endpoints
type AuditHandler struct {
	BaseHandler
	auditService *auditapp.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService *auditapp.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// RegisterRoutes registers audit routes
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	audit := rg.Group("/audit")
	{
		audit.GET("", h.List)
		audit.GET("/:module/:id", h.History)
	}
}

// List retrieves audit records with filtering and pagination
func (h *AuditHandler) List(c *gin.Context) {
	var filter auditapp.AuditLogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.auditService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(200, dto.NewPaginatedResponse(page))
}

// History retrieves the audit records for one document
func (h *AuditHandler) History(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	entries, err := h.auditService.GetHistory(c.Request.Context(), c.Param("module"), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entries)
}
