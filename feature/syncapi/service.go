package syncapi

import (
	"context"
	"errors"
	"sync"

	"inventory-sync/core/pipeline"
	"inventory-sync/core/runlog"

	"go.uber.org/zap"
)

// ErrRunInProgress is returned when a trigger arrives while a run is
// still executing. Runs are serialized per process.
var ErrRunInProgress = errors.New("a synchronization run is already in progress")

// Runner executes one full synchronization run. The command layer
// supplies a runner that also persists and archives the report.
type Runner interface {
	Run(ctx context.Context) *pipeline.Report
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context) *pipeline.Report

func (f RunnerFunc) Run(ctx context.Context) *pipeline.Report { return f(ctx) }

// Historian serves persisted run history. Nil when no database is
// configured.
type Historian interface {
	History(ctx context.Context, limit int) ([]runlog.Run, error)
	Get(ctx context.Context, id string) (*runlog.Run, error)
}

// Service coordinates API-triggered runs and history queries.
type Service struct {
	runner  Runner
	history Historian
	logger  *zap.Logger

	mu      sync.Mutex
	running bool
	last    *pipeline.Report
}

// NewService creates a new sync API service.
func NewService(runner Runner, history Historian, logger *zap.Logger) *Service {
	return &Service{
		runner:  runner,
		history: history,
		logger:  logger,
	}
}

// Run executes one synchronization run, rejecting concurrent triggers.
func (s *Service) Run(ctx context.Context) (*pipeline.Report, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrRunInProgress
	}
	s.running = true
	s.mu.Unlock()

	report := s.runner.Run(ctx)

	s.mu.Lock()
	s.running = false
	s.last = report
	s.mu.Unlock()

	return report, nil
}

// Status reports whether a run is executing and the last report, which
// is nil until the first run of this process completes.
func (s *Service) Status() (bool, *pipeline.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running, s.last
}

// History lists persisted runs, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]runlog.Run, error) {
	return s.history.History(ctx, limit)
}

// Get loads one persisted run with its device results.
func (s *Service) Get(ctx context.Context, id string) (*runlog.Run, error) {
	return s.history.Get(ctx, id)
}

// HasHistory reports whether run persistence is configured.
func (s *Service) HasHistory() bool {
	return s.history != nil
}
