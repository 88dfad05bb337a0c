package service

import (
	"context"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/repository"
	"github.com/google/uuid"
)

type campaignService struct {
	campaigns repository.CampaignRepo
	observer  UseCaseObserver
}

func NewCampaignService(campaigns repository.CampaignRepo, observers ...UseCaseObserver) CampaignService {
	return &campaignService{campaigns: campaigns, observer: useCaseObserverOrNoop(observers)}
}

func (s *campaignService) Create(ctx context.Context, calendarID, name string) (_ *domain.Campaign, err error) {
	defer observe(ctx, s.observer, "create-campaign", map[string]any{"calendar_id": calendarID, "name": name})(&err)
	name, err = domain.ValidateName("name", name)
	if err != nil {
		return nil, err
	}
	c := &domain.Campaign{ID: uuid.New().String(), CalendarID: calendarID, Name: name}
	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *campaignService) List(ctx context.Context, calendarID string) ([]*domain.Campaign, error) {
	return s.campaigns.ListByCalendar(ctx, calendarID)
}

func (s *campaignService) Rename(ctx context.Context, id, name string) (_ *domain.Campaign, err error) {
	defer observe(ctx, s.observer, "rename-campaign", map[string]any{"campaign_id": id, "name": name})(&err)
	name, err = domain.ValidateName("name", name)
	if err != nil {
		return nil, err
	}
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	if err := s.campaigns.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *campaignService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-campaign", map[string]any{"campaign_id": id})(&err)
	return s.campaigns.Delete(ctx, id)
}
