package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"trainlab/internal/analysis"
	"trainlab/internal/config"
	"trainlab/internal/fitness"
	"trainlab/internal/matcher"
	"trainlab/internal/plan"
	"trainlab/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "trainlab: %v\n", err)
		os.Exit(1)
	}
}

// output is the top-level JSON document written to stdout.
type output struct {
	Activities []analysis.ActivityMetrics `json:"activities,omitempty"`
	Laps       []analysis.LapMetrics      `json:"laps,omitempty"`
	Form       *fitness.FormState         `json:"form,omitempty"`
	Dashboard  *fitness.Dashboard         `json:"dashboard,omitempty"`
	Plan       []plan.Entry               `json:"plan,omitempty"`
	Planned    []matcher.PlannedWorkout   `json:"planned,omitempty"`
	Reviews    []matcher.Result           `json:"reviews,omitempty"`
	Errors     []string                   `json:"errors,omitempty"`
}

func run() error {
	var (
		configPath = flag.String("config", "", "Path to config file (default ~/.trainlab/config.json)")
		initConfig = flag.Bool("init-config", false, "Write a default config file and exit")
		planPath   = flag.String("plan", "", "Path to YAML plan/catalog file")
		generate   = flag.Bool("generate", false, "Generate daily plan entries from the plan file")
		withLaps   = flag.Bool("laps", false, "Include per-lap metrics in the output")
		verbose    = flag.Bool("v", false, "Verbose logging")
	)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [activity.fit ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := newLogger(*verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	if *initConfig {
		path, err := config.InitDefault()
		if err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
		fmt.Printf("Config file at %s\n", path)
		return nil
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	svc := service.New(cfg.Athlete, logger)
	out := output{}

	var planFile *plan.PlanFile
	if *planPath != "" {
		planFile, err = plan.LoadPlanFile(*planPath)
		if err != nil {
			return err
		}
	}

	var planned []matcher.PlannedWorkout
	if *generate {
		if planFile == nil || planFile.Plan == nil {
			return errors.New("-generate requires a -plan file with a plan section")
		}
		catalog := planFile.Workouts
		if len(catalog) == 0 {
			catalog = plan.DefaultCatalog()
		}
		entries, err := plan.Generate(*planFile.Plan, catalog, logger)
		if err != nil {
			return err
		}
		out.Plan = entries
		planned = plannedFromEntries(entries)
	}

	if flag.NArg() > 0 {
		result, err := svc.ProcessFiles(ctx, flag.Args())
		if err != nil {
			return err
		}
		out.Activities = result.Activities
		if *withLaps {
			out.Laps = result.Laps
		}
		for _, perr := range result.Errors {
			out.Errors = append(out.Errors, perr.Error())
		}

		if len(result.Activities) > 0 {
			today := analysis.Day(time.Now().UTC())
			report := svc.BuildReport(result.Activities, today)
			out.Form = &report.Form
			out.Dashboard = &report.Dashboard

			if len(planned) > 0 {
				rec := svc.Reconcile(result.Activities, planned)
				rec.Failed = result.Failed
				service.MarkMissed(rec.Planned, today)
				out.Planned = rec.Planned
				out.Reviews = rec.Reviews
				logger.Info("reconciled activities",
					zap.Int("matched", rec.Matched),
					zap.Int("ambiguous", rec.Ambiguous),
					zap.Int("unplanned", rec.Unplanned),
					zap.Int("failed", rec.Failed))
			}
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// loadConfig falls back to defaults when no config file exists; the tool
// stays useful with zero setup.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if errors.Is(err, config.ErrNoConfig) {
		defaults := config.DefaultConfig()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// plannedFromEntries turns generated plan entries into open slots for
// reconciliation.
func plannedFromEntries(entries []plan.Entry) []matcher.PlannedWorkout {
	planned := make([]matcher.PlannedWorkout, len(entries))
	for i, e := range entries {
		planned[i] = matcher.PlannedWorkout{
			ID:          e.ID,
			Date:        e.Date,
			Sport:       e.Type,
			DurationMin: e.DurationMin,
			Status:      matcher.StatusPlanned,
		}
	}
	return planned
}
