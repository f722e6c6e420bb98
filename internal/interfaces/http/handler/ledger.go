package handler

import (
	ledgerapp "github.com/goldshop/backend/internal/application/ledger"
	"github.com/goldshop/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// LedgerHandler handles ledger, catalog and account API endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *ledgerapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *ledgerapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger")
	{
		ledger.GET("/stock-movements", h.ListStockMovements)
		ledger.GET("/transactions", h.ListTransactions)
		ledger.GET("/parties/:id/gold", h.ListGoldEntries)
	}

	categories := rg.Group("/inventory/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.PUT("/:id", h.RenameCategory)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.GET("", h.ListAccounts)
	}
}

// ListStockMovements retrieves the inventory ledger
func (h *LedgerHandler) ListStockMovements(c *gin.Context) {
	var filter ledgerapp.LedgerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.ledgerService.ListStockMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(200, dto.NewPaginatedResponse(page))
}

// ListTransactions retrieves the money ledger
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	var filter ledgerapp.LedgerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.ledgerService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(200, dto.NewPaginatedResponse(page))
}

// ListGoldEntries retrieves one party's gold ledger
func (h *LedgerHandler) ListGoldEntries(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var filter ledgerapp.LedgerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.ledgerService.ListGoldEntries(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(200, dto.NewPaginatedResponse(page))
}

// CreateCategory creates a catalog category
func (h *LedgerHandler) CreateCategory(c *gin.Context) {
	var req ledgerapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.ledgerService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, category)
}

// ListCategories retrieves catalog categories with stock totals
func (h *LedgerHandler) ListCategories(c *gin.Context) {
	var filter ledgerapp.LedgerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.ledgerService.ListCategories(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(200, dto.NewPaginatedResponse(page))
}

// RenameCategory renames a catalog category
func (h *LedgerHandler) RenameCategory(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req ledgerapp.RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.ledgerService.RenameCategory(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, category)
}

// CreateAccount creates a money account
func (h *LedgerHandler) CreateAccount(c *gin.Context) {
	var req ledgerapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.ledgerService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, account)
}

// ListAccounts retrieves money accounts with balances
func (h *LedgerHandler) ListAccounts(c *gin.Context) {
	var filter ledgerapp.LedgerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	accounts, err := h.ledgerService.ListAccounts(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, accounts)
}
