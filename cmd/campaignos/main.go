package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/campaignos/internal/cli"
	"github.com/alexanderramin/campaignos/internal/config"
	"github.com/alexanderramin/campaignos/internal/db"
	"github.com/alexanderramin/campaignos/internal/logging"
	"github.com/alexanderramin/campaignos/internal/prefs"
	"github.com/alexanderramin/campaignos/internal/repository"
	"github.com/alexanderramin/campaignos/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg)
	if err != nil {
		// Logging is best effort; the CLI still works without a log file.
		logger = logging.Nop()
	}
	defer func() { _ = logger.Sync() }()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	calendarRepo := repository.NewSQLiteCalendarRepo(database)
	statusRepo := repository.NewSQLiteStatusRepo(database)
	swimlaneRepo := repository.NewSQLiteSwimlaneRepo(database)
	campaignRepo := repository.NewSQLiteCampaignRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewZapUseCaseObserver(logger))
	}

	// Wire services
	calendars := service.NewCalendarService(calendarRepo, statusRepo, swimlaneRepo, campaignRepo, activityRepo, uow, observers...)
	app := &cli.App{
		Calendars:  calendars,
		Swimlanes:  service.NewSwimlaneService(swimlaneRepo, uow, observers...),
		Statuses:   service.NewStatusService(statusRepo, activityRepo, observers...),
		Campaigns:  service.NewCampaignService(campaignRepo, observers...),
		Activities: service.NewActivityService(activityRepo, swimlaneRepo, statusRepo, campaignRepo, uow, observers...),
		Timeline:   service.NewTimelineService(calendars, observers...),

		PrefsPath:     cfg.PrefsPath,
		DragThreshold: cfg.DragThreshold,
		Logger:        logger,
	}

	// The interactive timeline needs a terminal on both ends.
	app.IsInteractive = func() bool {
		return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
			isatty.IsTerminal(os.Stdout.Fd())
	}

	app.Prefs, err = prefs.Load(cfg.PrefsPath)
	if err != nil {
		logger.Warn("ignoring unreadable prefs", zap.String("path", cfg.PrefsPath), zap.Error(err))
		app.PrefsUnreadable = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
