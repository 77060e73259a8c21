package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/accuracy"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/service"
)

// SweepRunner is the part of the tuning service the scheduler drives.
type SweepRunner interface {
	RunSweep(ctx context.Context, resume bool) (*accuracy.Summary, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	runner      SweepRunner
	sendMessage func(string) error
	spec        string
	schedule    cron.Schedule
	location    *time.Location
	clock       clockwork.Clock
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewScheduler validates spec as a standard five-field cron expression in
// timezone and prepares the recurring sweep job.
func NewScheduler(runner SweepRunner, sendMessage func(string) error, spec, timezone string, clock clockwork.Clock) (*Scheduler, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", timezone, err)
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
		gocron.WithClock(clock),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		s:           s,
		runner:      runner,
		sendMessage: sendMessage,
		spec:        spec,
		schedule:    schedule,
		location:    location,
		clock:       clock,
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

func (s *Scheduler) Start() error {
	// Sweeps can outlast the interval; a late trigger is skipped rather than queued.
	_, err := s.s.NewJob(
		gocron.CronJob(s.spec, false),
		gocron.NewTask(s.runSweep),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("accuracy-sweep"),
	)
	if err != nil {
		return fmt.Errorf("failed to create sweep job: %w", err)
	}

	s.s.Start()
	slog.Info("Scheduler started", "cron", s.spec, "next_run", s.NextRun())
	return nil
}

func (s *Scheduler) Stop() error {
	s.cancel()
	return s.s.Shutdown()
}

// NextRun is the next time the sweep fires after the clock's current time.
func (s *Scheduler) NextRun() time.Time {
	return s.schedule.Next(s.clock.Now().In(s.location))
}

func (s *Scheduler) runSweep() {
	summary, err := s.runner.RunSweep(s.ctx, true)
	if err != nil {
		slog.Error("Scheduled sweep failed", "error", err)
		s.send(fmt.Sprintf("⚠️ Scheduled sweep failed: %v", err))
		return
	}
	s.send("✅ *Sweep finished*\n\n" + service.FormatSummary(summary))
}

func (s *Scheduler) send(text string) {
	if s.sendMessage == nil {
		return
	}
	if err := s.sendMessage(text); err != nil {
		slog.Error("Failed to send sweep report", "error", err)
	}
}
