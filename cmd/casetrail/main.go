package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"casetrail/internal/cli"
	"casetrail/internal/config"
	"casetrail/internal/domain"
	"casetrail/internal/repository"
	"casetrail/internal/scheduler"
	"casetrail/internal/service"
	"casetrail/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CASETRAIL_CONFIG"))
	if err != nil {
		return err
	}
	if cfg.NoColor {
		os.Setenv("NO_COLOR", "1")
	}

	planSnap, err := store.LoadPlan(cfg.PlanPath)
	if err != nil {
		return fmt.Errorf("loading plan snapshot: %w", err)
	}
	outreachSnap, err := store.LoadOutreach(cfg.OutreachPath)
	if err != nil {
		return fmt.Errorf("loading outreach snapshot: %w", err)
	}

	planRepo := repository.NewPlanRepo()
	planRepo.Restore(planSnap.Projects, planSnap.PlanItems)
	outreachRepo := repository.NewOutreachRepo()
	outreachRepo.Restore(
		outreachSnap.Categories,
		outreachSnap.Contacts,
		outreachSnap.OutreachActions,
		outreachSnap.FollowUps,
		outreachSnap.Outcomes,
	)

	ids := func() string { return uuid.New().String() }
	clock := func() string { return time.Now().UTC().Format(domain.DateTimeLayout) }
	today := func() string { return time.Now().UTC().Format(domain.DateLayout) }

	planPersist := store.NewPlanPersister(cfg.PlanPath, planSnap.Version, planRepo, clock)
	outreachPersist := store.NewOutreachPersister(cfg.OutreachPath, outreachSnap.Version, outreachRepo, clock)
	audit := store.NewAuditLog(cfg.AuditPath, ids, clock)

	var observers []service.UseCaseObserver
	if os.Getenv("CASETRAIL_DEBUG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	planSvc := service.NewPlanService(planRepo, planPersist, audit, ids, clock, observers...)
	outreachSvc := service.NewOutreachService(outreachRepo, outreachPersist, audit, ids, clock, observers...)
	summarySvc := service.NewSummaryService(planSvc, outreachSvc)

	app := &cli.App{
		Plan:         planSvc,
		Outreach:     outreachSvc,
		Summary:      summarySvc,
		Ticker:       scheduler.NewTicker(summarySvc, today, observers...),
		TickSchedule: cfg.TickSchedule,
	}

	// Confirmation prompts only make sense on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
