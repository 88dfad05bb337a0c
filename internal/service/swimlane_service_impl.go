package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/campaignos/internal/db"
	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/repository"
	"github.com/google/uuid"
)

type swimlaneService struct {
	swimlanes repository.SwimlaneRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewSwimlaneService(swimlanes repository.SwimlaneRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SwimlaneService {
	return &swimlaneService{swimlanes: swimlanes, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Create appends the swimlane after the existing ones.
func (s *swimlaneService) Create(ctx context.Context, calendarID, name string) (*domain.Swimlane, error) {
	name, err := domain.ValidateName("name", name)
	if err != nil {
		return nil, err
	}
	next, err := s.swimlanes.NextSortOrder(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	sl := &domain.Swimlane{ID: uuid.New().String(), CalendarID: calendarID, Name: name, SortOrder: next}
	if err := s.swimlanes.Create(ctx, sl); err != nil {
		return nil, err
	}
	return sl, nil
}

func (s *swimlaneService) List(ctx context.Context, calendarID string) ([]*domain.Swimlane, error) {
	return s.swimlanes.ListByCalendar(ctx, calendarID)
}

func (s *swimlaneService) Rename(ctx context.Context, id, name string) (*domain.Swimlane, error) {
	name, err := domain.ValidateName("name", name)
	if err != nil {
		return nil, err
	}
	sl, err := s.swimlanes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sl.Name = name
	if err := s.swimlanes.Update(ctx, sl); err != nil {
		return nil, err
	}
	return sl, nil
}

func (s *swimlaneService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-swimlane", map[string]any{"swimlane_id": id})(&err)
	return s.swimlanes.Delete(ctx, id)
}

func (s *swimlaneService) Reorder(ctx context.Context, calendarID, swimlaneID string, newIndex int) (ordered []*domain.Swimlane, err error) {
	defer observe(ctx, s.observer, "reorder-swimlanes", map[string]any{
		"calendar_id": calendarID,
		"swimlane_id": swimlaneID,
		"index":       newIndex,
	})(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteSwimlaneRepo(tx)
		lanes, err := repo.ListByCalendar(ctx, calendarID)
		if err != nil {
			return err
		}

		from := -1
		for i, sl := range lanes {
			if sl.ID == swimlaneID {
				from = i
				break
			}
		}
		if from < 0 {
			return fmt.Errorf("%s in calendar: %w", swimlaneID, domain.NotFound("swimlane"))
		}

		ordered = moveIndex(lanes, from, min(max(newIndex, 0), len(lanes)-1))
		for i, sl := range ordered {
			if sl.SortOrder == i {
				continue
			}
			sl.SortOrder = i
			if err := repo.Update(ctx, sl); err != nil {
				return fmt.Errorf("renumbering swimlane %s: %w", sl.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ordered, nil
}

// moveIndex returns a new slice with the element at from moved to to.
func moveIndex[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	out = append(out[:to], append([]T{items[from]}, out[to:]...)...)
	return out
}
