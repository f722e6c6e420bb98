package partner

import (
	"context"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PartyRepository defines persistence operations for parties
type PartyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Party, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Party, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, party *Party) error
}
