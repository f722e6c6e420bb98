package handler

import (
	partnerapp "github.com/goldshop/backend/internal/application/partner"
	"github.com/goldshop/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// PartyHandler handles saved party API endpoints
type PartyHandler struct {
	BaseHandler
	partyService *partnerapp.PartyService
}

// NewPartyHandler creates a new PartyHandler
func NewPartyHandler(partyService *partnerapp.PartyService) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

// RegisterRoutes registers party routes
func (h *PartyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	parties := rg.Group("/parties")
	{
		parties.POST("", h.Create)
		parties.GET("", h.List)
		parties.GET("/:id", h.Get)
		parties.DELETE("/:id", h.Deactivate)
	}
}

// Create creates a saved party
func (h *PartyHandler) Create(c *gin.Context) {
	var req partnerapp.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	party, err := h.partyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, party)
}

// List retrieves parties with filtering and pagination
func (h *PartyHandler) List(c *gin.Context) {
	var filter partnerapp.PartyListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.partyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(200, dto.NewPaginatedResponse(page))
}

// Get retrieves one party
func (h *PartyHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	party, err := h.partyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, party)
}

// Deactivate marks a party inactive
func (h *PartyHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.partyService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
