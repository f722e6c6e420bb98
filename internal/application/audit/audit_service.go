package audit

import (
	"context"
	"time"

	"github.com/goldshop/backend/internal/domain/audit"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AuditLogFilter represents filter options for the audit trail
type AuditLogFilter struct {
	Module   string `form:"module"`
	Action   string `form:"action"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// LogEntryResponse represents an audit record in API responses
type LogEntryResponse struct {
	ID        uuid.UUID     `json:"id"`
	Module    string        `json:"module"`
	RecordID  uuid.UUID     `json:"record_id"`
	Action    string        `json:"action"`
	ActorID   uuid.UUID     `json:"actor_id"`
	ActorName string        `json:"actor_name"`
	Changes   audit.Changes `json:"changes,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// ToLogEntryResponse converts an audit record to its response form
func ToLogEntryResponse(e *audit.LogEntry) LogEntryResponse {
	return LogEntryResponse{
		ID:        e.ID,
		Module:    e.Module,
		RecordID:  e.RecordID,
		Action:    string(e.Action),
		ActorID:   e.ActorID,
		ActorName: e.ActorName,
		Changes:   e.Changes,
		CreatedAt: e.CreatedAt,
	}
}

// AuditService exposes the read side of the append-only audit trail
type AuditService struct {
	auditRepo audit.LogRepository
}

// NewAuditService creates an AuditService
func NewAuditService(auditRepo audit.LogRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// GetHistory retrieves the audit records for one document, newest first
func (s *AuditService) GetHistory(ctx context.Context, module string, recordID uuid.UUID) ([]LogEntryResponse, error) {
	entries, err := s.auditRepo.FindByRecord(ctx, module, recordID)
	if err != nil {
		return nil, err
	}

	items := make([]LogEntryResponse, 0, len(entries))
	for idx := range entries {
		items = append(items, ToLogEntryResponse(&entries[idx]))
	}
	return items, nil
}

// List retrieves audit records with filtering and pagination
func (s *AuditService) List(ctx context.Context, filter AuditLogFilter) (*shared.Paginated[LogEntryResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
	if filter.Module != "" {
		domainFilter.Filters["module"] = filter.Module
	}
	if filter.Action != "" {
		domainFilter.Filters["action"] = filter.Action
	}

	entries, err := s.auditRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.auditRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]LogEntryResponse, 0, len(entries))
	for idx := range entries {
		items = append(items, ToLogEntryResponse(&entries[idx]))
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}
