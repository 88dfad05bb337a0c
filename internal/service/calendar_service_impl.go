package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/campaignos/internal/db"
	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type calendarService struct {
	calendars  repository.CalendarRepo
	statuses   repository.StatusRepo
	swimlanes  repository.SwimlaneRepo
	campaigns  repository.CampaignRepo
	activities repository.ActivityRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewCalendarService(
	calendars repository.CalendarRepo,
	statuses repository.StatusRepo,
	swimlanes repository.SwimlaneRepo,
	campaigns repository.CampaignRepo,
	activities repository.ActivityRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CalendarService {
	return &calendarService{
		calendars:  calendars,
		statuses:   statuses,
		swimlanes:  swimlanes,
		campaigns:  campaigns,
		activities: activities,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *calendarService) Create(ctx context.Context, name string) (cal *domain.Calendar, err error) {
	fields := map[string]any{"name": name}
	defer observe(ctx, s.observer, "create-calendar", fields)(&err)

	name, err = domain.ValidateName("name", name)
	if err != nil {
		return nil, err
	}
	cal = &domain.Calendar{ID: uuid.New().String(), Name: name, CreatedAt: time.Now().UTC()}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteCalendarRepo(tx).Create(ctx, cal); err != nil {
			return err
		}
		txStatuses := repository.NewSQLiteStatusRepo(tx)
		for i, seed := range domain.DefaultStatuses {
			st := &domain.Status{
				ID:         uuid.New().String(),
				CalendarID: cal.ID,
				Name:       seed.Name,
				Color:      seed.Color,
				SortOrder:  i,
			}
			if err := txStatuses.Create(ctx, st); err != nil {
				return fmt.Errorf("seeding status %s: %w", seed.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["calendar_id"] = cal.ID
	return cal, nil
}

func (s *calendarService) Get(ctx context.Context, id string) (*domain.Calendar, error) {
	return s.calendars.GetByID(ctx, id)
}

func (s *calendarService) List(ctx context.Context) ([]*domain.Calendar, error) {
	return s.calendars.List(ctx)
}

func (s *calendarService) Resolve(ctx context.Context, ref string) (*domain.Calendar, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.Invalid("calendar", "calendar is required (use --calendar or set last_calendar)")
	}
	all, err := s.calendars.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range all {
		if c.ID == ref {
			return c, nil
		}
	}
	for _, c := range all {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}

	var matches []*domain.Calendar
	for _, c := range all {
		if strings.HasPrefix(c.ID, strings.ToLower(ref)) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%q: %w", ref, domain.NotFound("calendar"))
	case 1:
		return matches[0], nil
	default:
		return nil, domain.Invalid("calendar", "calendar reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func (s *calendarService) Rename(ctx context.Context, id, name string) (*domain.Calendar, error) {
	name, err := domain.ValidateName("name", name)
	if err != nil {
		return nil, err
	}
	cal, err := s.calendars.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cal.Name = name
	if err := s.calendars.Update(ctx, cal); err != nil {
		return nil, err
	}
	return cal, nil
}

func (s *calendarService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-calendar", map[string]any{"calendar_id": id})(&err)
	return s.calendars.Delete(ctx, id)
}

func (s *calendarService) Snapshot(ctx context.Context, id string) (*Snapshot, error) {
	cal, err := s.calendars.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{Calendar: cal}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Statuses, err = s.statuses.ListByCalendar(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Swimlanes, err = s.swimlanes.ListByCalendar(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Campaigns, err = s.campaigns.ListByCalendar(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Activities, err = s.activities.ListByCalendar(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading calendar %s: %w", cal.Name, err)
	}
	return snap, nil
}
