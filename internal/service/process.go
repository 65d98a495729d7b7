// Package service orchestrates the analysis pipeline: decoding activity
// files, extracting metrics, reconciling against the plan, and assembling
// the training-state report.
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trainlab/internal/analysis"
	"trainlab/internal/config"
	"trainlab/internal/fitdecode"
	"trainlab/internal/fitness"
	"trainlab/internal/hrzone"
	"trainlab/internal/telemetry"
)

// Service runs batch analysis with one athlete's HR configuration.
type Service struct {
	zones  hrzone.Config
	logger *zap.Logger
}

// New creates a service from athlete config for HR-derived calculations.
func New(athleteCfg config.AthleteConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		zones:  athleteCfg.HRZones(),
		logger: logger,
	}
}

// ProcessResult contains the results of a batch processing run. Failed
// counts files that decoded or validated badly; their errors are in Errors.
type ProcessResult struct {
	FilesProcessed  int
	MetricsComputed int
	LapsComputed    int
	Failed          int
	Activities      []analysis.ActivityMetrics
	Laps            []analysis.LapMetrics
	Errors          []error
}

// ProcessFiles decodes each activity file, validates the session, and
// computes activity and lap metrics. A file that fails to decode or
// validate is recorded in Errors and skipped; one bad file never aborts
// the batch.
func (s *Service) ProcessFiles(ctx context.Context, paths []string) (*ProcessResult, error) {
	result := &ProcessResult{}

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		activity, err := fitdecode.DecodeFile(path)
		if err != nil {
			s.logger.Warn("skipping activity file",
				zap.String("path", path),
				zap.Error(err))
			result.Errors = append(result.Errors, fmt.Errorf("decoding %s: %w", path, err))
			result.Failed++
			continue
		}

		metrics, laps, err := s.analyze(activity)
		if err != nil {
			s.logger.Warn("skipping invalid activity",
				zap.String("path", path),
				zap.Error(err))
			result.Errors = append(result.Errors, fmt.Errorf("validating %s: %w", path, err))
			result.Failed++
			continue
		}
		result.FilesProcessed++

		result.Activities = append(result.Activities, metrics)
		result.MetricsComputed++
		result.Laps = append(result.Laps, laps...)
		result.LapsComputed += len(laps)

		s.logger.Info("processed activity",
			zap.String("id", metrics.ID),
			zap.String("sport", metrics.Sport),
			zap.Float64("duration_min", metrics.DurationMin),
			zap.Float64("load", metrics.TrainingLoad))
	}

	// Stable chronological order regardless of argument order.
	sort.Slice(result.Activities, func(i, j int) bool {
		return result.Activities[i].Date.Before(result.Activities[j].Date)
	})

	return result, nil
}

// analyze validates a decoded activity and extracts its metrics. Malformed
// sessions (no start time, non-positive duration) are rejected here rather
// than flowing into the fitness model with a zero date.
func (s *Service) analyze(activity *telemetry.Activity) (analysis.ActivityMetrics, []analysis.LapMetrics, error) {
	if err := activity.Session.Validate(); err != nil {
		return analysis.ActivityMetrics{}, nil, err
	}

	id := uuid.NewString()
	metrics := analysis.ExtractActivityMetrics(activity, s.zones)
	metrics.ID = id
	laps := analysis.ExtractLapMetrics(activity, id, s.zones)
	return metrics, laps, nil
}

// Report is the assembled training state across all processed activities.
type Report struct {
	Form      fitness.FormState `json:"form"`
	Dashboard fitness.Dashboard `json:"dashboard"`
}

// BuildReport derives the fitness model and dashboard from activity metrics.
// The dashboard bundle already carries the form state; Form is the same
// value surfaced at the top level.
func (s *Service) BuildReport(activities []analysis.ActivityMetrics, today time.Time) Report {
	dash := fitness.BuildDashboard(activities, today)
	return Report{Form: dash.Form, Dashboard: dash}
}
