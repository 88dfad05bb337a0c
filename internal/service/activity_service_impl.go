package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/campaignos/internal/db"
	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/interaction"
	"github.com/alexanderramin/campaignos/internal/repository"
	"github.com/google/uuid"
)

type activityService struct {
	activities repository.ActivityRepo
	swimlanes  repository.SwimlaneRepo
	statuses   repository.StatusRepo
	campaigns  repository.CampaignRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
	now        func() time.Time
}

func NewActivityService(
	activities repository.ActivityRepo,
	swimlanes repository.SwimlaneRepo,
	statuses repository.StatusRepo,
	campaigns repository.CampaignRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ActivityService {
	return &activityService{
		activities: activities,
		swimlanes:  swimlanes,
		statuses:   statuses,
		campaigns:  campaigns,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// refRepos groups the lookups used to check an activity's references, so the
// same check runs inside and outside a transaction.
type refRepos struct {
	swimlanes repository.SwimlaneRepo
	statuses  repository.StatusRepo
	campaigns repository.CampaignRepo
}

func txRefRepos(tx db.DBTX) refRepos {
	return refRepos{
		swimlanes: repository.NewSQLiteSwimlaneRepo(tx),
		statuses:  repository.NewSQLiteStatusRepo(tx),
		campaigns: repository.NewSQLiteCampaignRepo(tx),
	}
}

func (s *activityService) refs() refRepos {
	return refRepos{swimlanes: s.swimlanes, statuses: s.statuses, campaigns: s.campaigns}
}

// checkRefs rejects an activity whose swimlane, status or campaign belongs to
// another calendar. It fills CalendarID from the swimlane when unset.
func (r refRepos) checkRefs(ctx context.Context, a *domain.Activity) error {
	sl, err := r.swimlanes.GetByID(ctx, a.SwimlaneID)
	if err != nil {
		return fmt.Errorf("swimlane %s: %w", a.SwimlaneID, err)
	}
	if a.CalendarID == "" {
		a.CalendarID = sl.CalendarID
	}
	if sl.CalendarID != a.CalendarID {
		return domain.Invalid("swimlane", "swimlane %q belongs to another calendar", sl.Name)
	}

	st, err := r.statuses.GetByID(ctx, a.StatusID)
	if err != nil {
		return fmt.Errorf("status %s: %w", a.StatusID, err)
	}
	if st.CalendarID != a.CalendarID {
		return domain.Invalid("status", "status %q belongs to another calendar", st.Name)
	}

	if a.CampaignID != nil {
		c, err := r.campaigns.GetByID(ctx, *a.CampaignID)
		if err != nil {
			return fmt.Errorf("campaign %s: %w", *a.CampaignID, err)
		}
		if c.CalendarID != a.CalendarID {
			return domain.Invalid("campaign", "campaign %q belongs to another calendar", c.Name)
		}
	}
	return nil
}

// fillDefaults sets the calendar, currency, region and status an unsaved
// activity falls back to.
func (s *activityService) fillDefaults(ctx context.Context, a *domain.Activity) error {
	if a.Currency == "" {
		a.Currency = domain.CurrencyUSD
	}
	if a.Region == "" {
		a.Region = domain.RegionUS
	}
	if a.CalendarID == "" && a.SwimlaneID != "" {
		sl, err := s.swimlanes.GetByID(ctx, a.SwimlaneID)
		if err != nil {
			return fmt.Errorf("swimlane %s: %w", a.SwimlaneID, err)
		}
		a.CalendarID = sl.CalendarID
	}
	if a.StatusID == "" && a.CalendarID != "" {
		statuses, err := s.statuses.ListByCalendar(ctx, a.CalendarID)
		if err != nil {
			return err
		}
		if len(statuses) > 0 {
			a.StatusID = statuses[0].ID
		}
	}
	return nil
}

func (s *activityService) Create(ctx context.Context, a *domain.Activity) (err error) {
	fields := map[string]any{"swimlane_id": a.SwimlaneID}
	defer observe(ctx, s.observer, "create-activity", fields)(&err)

	if err := s.fillDefaults(ctx, a); err != nil {
		return err
	}
	if err := a.Validate(); err != nil {
		return err
	}
	if err := s.refs().checkRefs(ctx, a); err != nil {
		return err
	}

	now := s.now()
	a.ID = uuid.New().String()
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := s.activities.Create(ctx, a); err != nil {
		return err
	}
	fields["activity_id"] = a.ID
	return nil
}

func (s *activityService) Get(ctx context.Context, id string) (*domain.Activity, error) {
	return s.activities.GetByID(ctx, id)
}

func (s *activityService) List(ctx context.Context, calendarID string, f ActivityFilter) ([]*domain.Activity, error) {
	all, err := s.activities.ListByCalendar(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

func (s *activityService) Update(ctx context.Context, id string, changes ...domain.ActivityChange) (updated *domain.Activity, err error) {
	fieldNames := make([]string, len(changes))
	for i, c := range changes {
		fieldNames[i] = c.Field()
	}
	defer observe(ctx, s.observer, "update-activity", map[string]any{
		"activity_id": id,
		"fields":      fieldNames,
	})(&err)
	return s.update(ctx, id, changes...)
}

func (s *activityService) update(ctx context.Context, id string, changes ...domain.ActivityChange) (*domain.Activity, error) {
	return db.InTx(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (*domain.Activity, error) {
		repo := repository.NewSQLiteActivityRepo(tx)
		a, err := repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := a.Apply(s.now(), changes...); err != nil {
			return nil, err
		}
		if err := txRefRepos(tx).checkRefs(ctx, a); err != nil {
			return nil, err
		}
		if err := repo.Update(ctx, a); err != nil {
			return nil, err
		}
		return a, nil
	})
}

func (s *activityService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-activity", map[string]any{"activity_id": id})(&err)
	return s.activities.Delete(ctx, id)
}

func (s *activityService) Commit(ctx context.Context, req interaction.UpdateRequest) (updated *domain.Activity, err error) {
	defer observe(ctx, s.observer, "commit-drag", map[string]any{
		"activity_id": req.ActivityID,
		"swimlane_id": req.SwimlaneID,
		"interval":    req.Interval.String(),
	})(&err)

	return s.update(ctx, req.ActivityID,
		domain.Reschedule{Start: req.Interval.Start, End: req.Interval.End},
		domain.Reassign{SwimlaneID: req.SwimlaneID},
	)
}

func (s *activityService) CreateFromDraft(ctx context.Context, req interaction.CreateRequest, title string, extra ...domain.ActivityChange) (*domain.Activity, error) {
	var a *domain.Activity
	if req.Defaults != nil {
		a = req.Defaults.CloneDraft()
	} else {
		a = &domain.Activity{}
	}
	a.CalendarID = ""
	a.SwimlaneID = req.SwimlaneID
	a.StartDate = req.Interval.Start
	a.EndDate = req.Interval.End
	if title != "" {
		a.Title = title
	}

	if err := s.fillDefaults(ctx, a); err != nil {
		return nil, err
	}
	if len(extra) > 0 {
		if err := a.Apply(s.now(), extra...); err != nil {
			return nil, err
		}
	}
	if err := s.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *activityService) Clone(ctx context.Context, id string) (*domain.Activity, error) {
	src, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c := src.CloneDraft()
	c.Title = src.Title + " (copy)"
	if err := s.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
