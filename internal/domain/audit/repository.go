package audit

import (
	"context"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LogRepository is the append-only audit trail store
type LogRepository interface {
	Append(ctx context.Context, entry *LogEntry) error
	FindByRecord(ctx context.Context, module string, recordID uuid.UUID) ([]LogEntry, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]LogEntry, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
