package trader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alejandrodnm/goalbot/internal/domain"
	"github.com/alejandrodnm/goalbot/internal/ports"
)

const defaultErrorBackoff = 5 * time.Second

// OrchestratorConfig controls the top-level poll loop.
type OrchestratorConfig struct {
	// PollInterval is the delay between live-feed polls.
	PollInterval time.Duration
	// ErrorBackoff is the pause after a failed cycle before the loop resumes.
	ErrorBackoff time.Duration
	// Detector is the entry-precondition window.
	Detector DetectorConfig
	// Monitor drives each spawned position monitor.
	Monitor MonitorConfig
	// Once runs a single cycle and returns (no monitors are awaited beyond ctx).
	Once bool
}

// Orchestrator runs the candidate detector over each polling cycle and spawns
// one independent Monitor goroutine per qualifying fixture. The poll loop
// never blocks on a monitor; monitors run concurrently with each other and
// with subsequent cycles.
type Orchestrator struct {
	cfg      OrchestratorConfig
	feed     ports.FixtureFeed
	detector *Detector
	monitor  *Monitor
	notifier ports.Notifier
	store    ports.Storage

	mu       sync.Mutex
	inflight map[int64]bool // fixture IDs with a running monitor
	wg       sync.WaitGroup
}

// NewOrchestrator creates an Orchestrator with all dependencies injected.
func NewOrchestrator(
	cfg OrchestratorConfig,
	feed ports.FixtureFeed,
	monitor *Monitor,
	notifier ports.Notifier,
	store ports.Storage,
) *Orchestrator {
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = defaultErrorBackoff
	}
	return &Orchestrator{
		cfg:      cfg,
		feed:     feed,
		detector: NewDetector(cfg.Detector),
		monitor:  monitor,
		notifier: notifier,
		store:    store,
		inflight: make(map[int64]bool),
	}
}

// Run executes the poll loop until the context is cancelled, then waits for
// every in-flight monitor to reach a terminal state.
func (o *Orchestrator) Run(ctx context.Context) error {
	slog.Info("orchestrator starting",
		"interval", o.cfg.PollInterval,
		"entry_window", fmt.Sprintf("[%d,%d]", o.cfg.Detector.MinMinute, o.cfg.Detector.MaxMinute),
		"cashout_minute", o.cfg.Monitor.CashoutMinute,
		"dry_run", o.cfg.Monitor.DryRun,
		"once", o.cfg.Once,
	)

	o.runCycle(ctx)
	if o.cfg.Once {
		o.wg.Wait()
		return nil
	}

	ticker := time.NewTicker(o.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("orchestrator stopping, waiting for monitors", "in_flight", o.inflightCount())
			o.wg.Wait()
			return nil
		case <-ticker.C:
			o.runCycle(ctx)
		}
	}
}

// runCycle polls the feed once and spawns monitors for new candidates.
// A single cycle's failure never crashes the process: errors are logged and
// the loop continues after a short backoff.
func (o *Orchestrator) runCycle(ctx context.Context) {
	fixtures, err := o.feed.LiveFixtures(ctx)
	if err != nil {
		slog.Error("live feed poll failed", "err", err)
		o.backoff(ctx)
		return
	}

	candidates := o.detector.Detect(fixtures)
	slog.Debug("cycle complete", "fixtures", len(fixtures), "candidates", len(candidates))

	for _, cand := range candidates {
		o.spawn(ctx, cand)
	}
}

// spawn starts a monitor for the candidate unless one is already running for
// the fixture. The in-flight set is checked and marked under one lock so two
// cycles can never double-spawn (at-most-one-monitor-per-fixture).
func (o *Orchestrator) spawn(ctx context.Context, cand domain.Candidate) {
	o.mu.Lock()
	if o.inflight[cand.Fixture.ID] {
		o.mu.Unlock()
		slog.Debug("fixture already monitored, skipping", "fixture_id", cand.Fixture.ID)
		return
	}
	o.inflight[cand.Fixture.ID] = true
	o.mu.Unlock()

	slog.Info("candidate match found",
		"fixture_id", cand.Fixture.ID,
		"match", cand.Fixture.Name(),
		"country", cand.Fixture.Country,
		"minute", cand.Minute,
	)
	o.notify(ctx, "Candidate found",
		fmt.Sprintf("%s at %d' is 0-0 and inside the entry window.", cand.Fixture.Name(), cand.Minute))

	if o.store != nil {
		if err := o.store.SaveCandidate(ctx, cand); err != nil {
			slog.Warn("failed to journal candidate", "fixture_id", cand.Fixture.ID, "err", err)
		}
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer o.release(cand.Fixture.ID)
		defer func() {
			if r := recover(); r != nil {
				slog.Error("monitor panicked", "fixture_id", cand.Fixture.ID, "panic", r)
			}
		}()
		o.monitor.Run(ctx, cand)
	}()
}

// release removes the fixture from the in-flight set once its monitor ends.
// After release a later cycle may re-detect the fixture; the detector's
// precondition (still 0-0, inside the window) keeps re-entry rare.
func (o *Orchestrator) release(fixtureID int64) {
	o.mu.Lock()
	delete(o.inflight, fixtureID)
	o.mu.Unlock()
}

func (o *Orchestrator) inflightCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.inflight)
}

func (o *Orchestrator) backoff(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(o.cfg.ErrorBackoff):
	}
}

func (o *Orchestrator) notify(ctx context.Context, subject, body string) {
	if o.notifier == nil {
		return
	}
	if err := o.notifier.Notify(ctx, subject, body); err != nil {
		slog.Warn("notification failed", "subject", subject, "err", err)
	}
}
