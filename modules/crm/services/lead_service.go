package services

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/crm/domain/aggregates/lead"
	"github.com/solstice-web/sitekit/pkg/eventbus"
)

var ErrUnknownStatus = errors.New("unknown lead status")

type LeadService struct {
	repo      lead.Repository
	publisher eventbus.EventBus
}

func NewLeadService(repo lead.Repository, publisher eventbus.EventBus) *LeadService {
	return &LeadService{repo: repo, publisher: publisher}
}

func (s *LeadService) GetPaginated(ctx context.Context, params *lead.FindParams) ([]lead.Lead, int64, error) {
	if params == nil {
		params = &lead.FindParams{}
	}
	params.Search = strings.TrimSpace(params.Search)
	return s.repo.GetPaginated(ctx, params)
}

// GetAll serves the export path: same filter spec, no pagination.
func (s *LeadService) GetAll(ctx context.Context, params *lead.FindParams) ([]lead.Lead, error) {
	if params == nil {
		params = &lead.FindParams{}
	}
	params.Limit = 0
	params.Offset = 0
	params.Search = strings.TrimSpace(params.Search)
	return s.repo.GetAll(ctx, params)
}

func (s *LeadService) GetByID(ctx context.Context, id uuid.UUID) (lead.Lead, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *LeadService) Create(ctx context.Context, dto *lead.CreateDTO, ipAddress string) (lead.Lead, error) {
	if dto == nil {
		return lead.Lead{}, errors.New("missing dto")
	}
	dto.Normalize()
	created, err := s.repo.Create(ctx, dto.ToEntity(ipAddress))
	if err != nil {
		return lead.Lead{}, err
	}
	s.publisher.Publish(&lead.CreatedEvent{Result: created})
	return created, nil
}

func (s *LeadService) UpdateStatus(ctx context.Context, id uuid.UUID, status lead.Status) (lead.Lead, error) {
	if !lead.IsKnownStatus(status) {
		return lead.Lead{}, ErrUnknownStatus
	}
	previous, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return lead.Lead{}, err
	}
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return lead.Lead{}, err
	}
	s.publisher.Publish(&lead.StatusChangedEvent{
		Previous: previous.Status(),
		Result:   updated,
	})
	return updated, nil
}
