package handler

import (
	reportapp "github.com/goldshop/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles reporting API endpoints
type ReportHandler struct {
	BaseHandler
	outstandingService *reportapp.OutstandingService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(outstandingService *reportapp.OutstandingService) *ReportHandler {
	return &ReportHandler{outstandingService: outstandingService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/outstanding", h.Outstanding)
		reports.GET("/parties/:id/summary", h.PartySummary)
	}
}

// Outstanding builds the outstanding balances report with aging
func (h *ReportHandler) Outstanding(c *gin.Context) {
	report, err := h.outstandingService.GetOutstanding(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, report)
}

// PartySummary computes one party's balance position
func (h *ReportHandler) PartySummary(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	summary, err := h.outstandingService.GetPartySummary(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}
