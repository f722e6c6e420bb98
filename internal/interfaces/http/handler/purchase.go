package handler

import (
	tradeapp "github.com/goldshop/backend/internal/application/trade"
	"github.com/goldshop/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles vendor purchase API endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseService
	finalizeService *tradeapp.FinalizeService
	paymentService  *tradeapp.PaymentService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(
	purchaseService *tradeapp.PurchaseService,
	finalizeService *tradeapp.FinalizeService,
	paymentService *tradeapp.PaymentService,
) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		finalizeService: finalizeService,
		paymentService:  paymentService,
	}
}

// RegisterRoutes registers purchase routes
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.Create)
		purchases.GET("", h.List)
		purchases.GET("/:id", h.Get)
		purchases.PUT("/:id", h.Update)
		purchases.DELETE("/:id", h.Delete)
		purchases.POST("/:id/items", h.AddItem)
		purchases.DELETE("/:id/items/:itemId", h.RemoveItem)
		purchases.PUT("/:id/payment", h.SetPayment)
		purchases.PUT("/:id/advance-gold", h.SetAdvanceGold)
		purchases.PUT("/:id/exchange-gold", h.SetExchangeGold)
		purchases.POST("/:id/finalize", h.Finalize)
		purchases.POST("/:id/settle", h.Settle)
	}
}

// Create creates a draft purchase
func (h *PurchaseHandler) Create(c *gin.Context) {
	identity, ok := h.getIdentity(c)
	if !ok {
		return
	}

	var req tradeapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.purchaseService.Create(c.Request.Context(), req, identity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, purchase)
}

// List retrieves purchases with filtering and pagination
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter tradeapp.PurchaseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.purchaseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(200, dto.NewPaginatedResponse(page))
}

// Get retrieves one purchase
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Update edits a purchase under the draft and override rules
func (h *PurchaseHandler) Update(c *gin.Context) {
	identity, ok := h.getIdentity(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req tradeapp.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.purchaseService.Update(c.Request.Context(), id, req, identity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Delete removes a purchase under the draft and override rules
func (h *PurchaseHandler) Delete(c *gin.Context) {
	identity, ok := h.getIdentity(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), id, c.Query("reason"), identity); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// AddItem adds a line item to a draft purchase
func (h *PurchaseHandler) AddItem(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req tradeapp.AddPurchaseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.purchaseService.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, purchase)
}

// RemoveItem removes a line item from a draft purchase
func (h *PurchaseHandler) RemoveItem(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseID(c, "itemId")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, purchase)
}

// SetPayment sets the up-front money payment terms on a draft purchase
func (h *PurchaseHandler) SetPayment(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req tradeapp.SetPurchasePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.purchaseService.SetPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, purchase)
}

// SetAdvanceGold sets the advance gold terms on a draft purchase
func (h *PurchaseHandler) SetAdvanceGold(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req tradeapp.SetPurchaseGoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.purchaseService.SetAdvanceGold(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, purchase)
}

// SetExchangeGold sets the exchange gold terms on a draft purchase
func (h *PurchaseHandler) SetExchangeGold(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req tradeapp.SetPurchaseGoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.purchaseService.SetExchangeGold(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Finalize commits a draft purchase to the ledgers
func (h *PurchaseHandler) Finalize(c *gin.Context) {
	identity, ok := h.getIdentity(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	purchase, err := h.finalizeService.FinalizePurchase(c.Request.Context(), id, identity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Settle pays down an open vendor payable
func (h *PurchaseHandler) Settle(c *gin.Context) {
	identity, ok := h.getIdentity(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req tradeapp.SettlePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.paymentService.SettlePurchase(c.Request.Context(), id, req, identity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, purchase)
}
