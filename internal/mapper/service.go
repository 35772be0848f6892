package mapper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"speciesmap/internal/areas"
	"speciesmap/internal/config"
	"speciesmap/internal/logging"
	"speciesmap/internal/palette"
	"speciesmap/internal/session"
)

// Service runs speciesmap operations against one session store.
type Service struct {
	cfg    *config.Config
	store  *session.Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
	lock   *flock.Flock

	running atomic.Bool

	areasOnce sync.Once
	areas     *areas.Set
	areasErr  error
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for run timestamps and file names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithAreas supplies an already loaded reference set instead of reading areas.path.
func WithAreas(set *areas.Set) Option {
	return func(s *Service) {
		if set != nil {
			s.areasOnce.Do(func() { s.areas = set })
		}
	}
}

// New constructs a Service.
func New(cfg *config.Config, store *session.Store, logger *slog.Logger, opts ...Option) (*Service, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("mapper requires config and session store")
	}
	s := &Service{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "mapper"),
		now:    time.Now,
		newID:  uuid.NewString,
		lock:   flock.New(cfg.LockPath()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Areas returns the reference set, loading it on first use.
func (s *Service) Areas() (*areas.Set, error) {
	s.areasOnce.Do(func() {
		s.areas, s.areasErr = areas.Load(s.cfg.Areas.Path, s.cfg.Areas.NameProperty)
	})
	if s.areasErr != nil {
		return nil, fmt.Errorf("load reference areas: %w", s.areasErr)
	}
	return s.areas, nil
}

// acquire takes the in-process flag and the lock file. The returned function
// releases both.
func (s *Service) acquire() (func(), error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		s.running.Store(false)
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		s.running.Store(false)
		return nil, ErrBusy
	}
	return func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("failed to release lock", logging.String("lock_path", s.lock.Path()), logging.Error(err))
		}
		s.running.Store(false)
	}, nil
}

// runScope tracks one recorded operation.
type runScope struct {
	ctx    context.Context
	run    session.Run
	logger *slog.Logger
}

func (s *Service) startRun(ctx context.Context, kind session.RunKind, family, genus string) (*runScope, error) {
	run := session.Run{
		ID:        s.newID(),
		Kind:      kind,
		Status:    session.RunRunning,
		StartedAt: s.now(),
		Family:    family,
		Genus:     genus,
	}
	if err := s.store.StartRun(ctx, run); err != nil {
		return nil, err
	}
	runCtx := logging.WithRun(ctx, run.ID, string(kind))
	return &runScope{ctx: runCtx, run: run, logger: logging.WithContext(runCtx, s.logger)}, nil
}

// finish records the outcome. The store write uses a fresh context so a
// cancelled run is still recorded as failed.
func (s *Service) finish(scope *runScope, err error) {
	scope.run.FinishedAt = s.now()
	scope.run.Status = session.RunSucceeded
	if err != nil {
		scope.run.Status = session.RunFailed
		scope.run.Error = err.Error()
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(scope.ctx), 5*time.Second)
	defer cancel()
	if ferr := s.store.FinishRun(ctx, scope.run); ferr != nil {
		s.logger.Warn("failed to record run outcome", logging.String(logging.FieldRunID, scope.run.ID), logging.Error(ferr))
	}
	if err != nil {
		logging.ErrorWithContext(scope.logger, "run failed", string(scope.run.Kind)+"_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hintOrDefault(err)),
		)
	}
}

func hintOrDefault(err error) string {
	if hint := Hint(err); hint != "" {
		return hint
	}
	return "check logs for details"
}

// DefaultPolicy returns the color policy described by the [colors] config.
// A configured split year selects the year split policy with the default
// color as fallback.
func DefaultPolicy(cfg *config.Config) palette.Spec {
	if strings.TrimSpace(cfg.Colors.SplitYear) != "" {
		return palette.Spec{
			Kind:     palette.KindYearSplit,
			Split:    cfg.Colors.SplitYear,
			Pre:      cfg.Colors.PreColor,
			Post:     cfg.Colors.PostColor,
			Fallback: cfg.Colors.Default,
		}
	}
	return palette.Spec{Kind: palette.KindSingle, Color: cfg.Colors.Default}
}
