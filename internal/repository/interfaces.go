package repository

import (
	"context"

	"github.com/alexanderramin/campaignos/internal/domain"
)

type CalendarRepo interface {
	Create(ctx context.Context, c *domain.Calendar) error
	GetByID(ctx context.Context, id string) (*domain.Calendar, error)
	List(ctx context.Context) ([]*domain.Calendar, error)
	Update(ctx context.Context, c *domain.Calendar) error
	Delete(ctx context.Context, id string) error
}

type StatusRepo interface {
	Create(ctx context.Context, s *domain.Status) error
	GetByID(ctx context.Context, id string) (*domain.Status, error)
	ListByCalendar(ctx context.Context, calendarID string) ([]*domain.Status, error)
	NextSortOrder(ctx context.Context, calendarID string) (int, error)
	Update(ctx context.Context, s *domain.Status) error
	Delete(ctx context.Context, id string) error
}

type SwimlaneRepo interface {
	Create(ctx context.Context, s *domain.Swimlane) error
	GetByID(ctx context.Context, id string) (*domain.Swimlane, error)
	ListByCalendar(ctx context.Context, calendarID string) ([]*domain.Swimlane, error)
	NextSortOrder(ctx context.Context, calendarID string) (int, error)
	Update(ctx context.Context, s *domain.Swimlane) error
	Delete(ctx context.Context, id string) error
}

type CampaignRepo interface {
	Create(ctx context.Context, c *domain.Campaign) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	ListByCalendar(ctx context.Context, calendarID string) ([]*domain.Campaign, error)
	Update(ctx context.Context, c *domain.Campaign) error
	Delete(ctx context.Context, id string) error
}

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	ListByCalendar(ctx context.Context, calendarID string) ([]*domain.Activity, error)
	CountByStatus(ctx context.Context, statusID string) (int, error)
	Update(ctx context.Context, a *domain.Activity) error
	Delete(ctx context.Context, id string) error
}
