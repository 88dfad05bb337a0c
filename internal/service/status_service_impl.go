package service

import (
	"context"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/repository"
	"github.com/google/uuid"
)

type statusService struct {
	statuses   repository.StatusRepo
	activities repository.ActivityRepo
	observer   UseCaseObserver
}

func NewStatusService(statuses repository.StatusRepo, activities repository.ActivityRepo, observers ...UseCaseObserver) StatusService {
	return &statusService{statuses: statuses, activities: activities, observer: useCaseObserverOrNoop(observers)}
}

func (s *statusService) Create(ctx context.Context, calendarID, name, color string) (_ *domain.Status, err error) {
	defer observe(ctx, s.observer, "create-status", map[string]any{"calendar_id": calendarID, "name": name})(&err)
	st := &domain.Status{ID: uuid.New().String(), CalendarID: calendarID, Name: name, Color: color}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	next, err := s.statuses.NextSortOrder(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	st.SortOrder = next
	if err := s.statuses.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *statusService) List(ctx context.Context, calendarID string) ([]*domain.Status, error) {
	return s.statuses.ListByCalendar(ctx, calendarID)
}

func (s *statusService) Update(ctx context.Context, id string, upd StatusUpdate) (_ *domain.Status, err error) {
	defer observe(ctx, s.observer, "update-status", map[string]any{"status_id": id})(&err)
	if upd.Name == nil && upd.Color == nil && upd.SortOrder == nil {
		return nil, domain.Invalid("status", "no changes to apply")
	}
	st, err := s.statuses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		st.Name = *upd.Name
	}
	if upd.Color != nil {
		st.Color = *upd.Color
	}
	if upd.SortOrder != nil {
		st.SortOrder = *upd.SortOrder
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	if err := s.statuses.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *statusService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-status", map[string]any{"status_id": id})(&err)
	st, err := s.statuses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.activities.CountByStatus(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Invalid("status", "status %q is used by %d activities; move them to another status first", st.Name, n)
	}
	return s.statuses.Delete(ctx, id)
}
