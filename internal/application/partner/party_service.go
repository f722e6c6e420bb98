package partner

import (
	"context"
	"time"

	"github.com/goldshop/backend/internal/domain/partner"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreatePartyRequest represents a request to create a saved party
type CreatePartyRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=200"`
	PartyType string `json:"party_type" binding:"required,oneof=customer vendor worker"`
	Phone     string `json:"phone" binding:"max=30"`
}

// PartyListFilter represents filter options for the party list
type PartyListFilter struct {
	Search    string `form:"search"`
	PartyType string `form:"party_type"`
	Page      int    `form:"page" binding:"min=0"`
	PageSize  int    `form:"page_size" binding:"min=0,max=100"`
}

// PartyResponse represents a party in API responses
type PartyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	PartyType string    `json:"party_type"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPartyResponse converts a party to its response form
func ToPartyResponse(p *partner.Party) PartyResponse {
	return PartyResponse{
		ID:        p.ID,
		Name:      p.Name,
		PartyType: string(p.PartyType),
		Phone:     p.Phone,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}
}

// PartyService handles saved party operations
type PartyService struct {
	partyRepo partner.PartyRepository
	logger    *zap.Logger
}

// NewPartyService creates a PartyService
func NewPartyService(partyRepo partner.PartyRepository, logger *zap.Logger) *PartyService {
	return &PartyService{partyRepo: partyRepo, logger: logger}
}

// Create creates a new saved party
func (s *PartyService) Create(ctx context.Context, req CreatePartyRequest) (*PartyResponse, error) {
	party, err := partner.NewParty(req.Name, partner.PartyType(req.PartyType), req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.partyRepo.Save(ctx, party); err != nil {
		return nil, err
	}

	s.logger.Info("party created",
		zap.String("party_id", party.ID.String()),
		zap.String("name", party.Name),
		zap.String("type", string(party.PartyType)))

	response := ToPartyResponse(party)
	return &response, nil
}

// GetByID retrieves a party by ID
func (s *PartyService) GetByID(ctx context.Context, partyID uuid.UUID) (*PartyResponse, error) {
	party, err := s.partyRepo.FindByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	response := ToPartyResponse(party)
	return &response, nil
}

// List retrieves parties with filtering and pagination
func (s *PartyService) List(ctx context.Context, filter PartyListFilter) (*shared.Paginated[PartyResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.PartyType != "" {
		domainFilter.Filters["party_type"] = filter.PartyType
	}

	parties, err := s.partyRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.partyRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]PartyResponse, 0, len(parties))
	for idx := range parties {
		items = append(items, ToPartyResponse(&parties[idx]))
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// Deactivate marks a party inactive. Ledger history is untouched.
func (s *PartyService) Deactivate(ctx context.Context, partyID uuid.UUID) error {
	party, err := s.partyRepo.FindByID(ctx, partyID)
	if err != nil {
		return err
	}
	party.Deactivate()
	return s.partyRepo.Save(ctx, party)
}
