package lockstep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/aretw0/lockstep/internal/logging"
	"github.com/aretw0/lockstep/internal/metrics"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/fsm"
	"github.com/aretw0/lockstep/pkg/ports"
	"github.com/aretw0/lockstep/pkg/ups"
	"golang.org/x/sync/errgroup"
)

// Version is the release of the lockstep module.
const Version = "0.3.0"

// Solver finds the first step at which every selected trajectory through a
// network stands on a final node.
// It is safe for concurrent use once built.
type Solver struct {
	start       domain.Selector
	final       domain.Selector
	cache       ports.ResultCache
	metrics     *metrics.Collector
	logger      *slog.Logger
	concurrency int
}

// Option defines a functional option for configuring the Solver.
type Option func(*Solver)

// WithStart selects the nodes that start a trajectory (default: suffix "A").
func WithStart(sel domain.Selector) Option {
	return func(s *Solver) {
		s.start = sel
	}
}

// WithFinal selects the final nodes (default: suffix "Z").
func WithFinal(sel domain.Selector) Option {
	return func(s *Solver) {
		s.final = sel
	}
}

// WithCache memoizes trajectory sets in the given cache.
func WithCache(cache ports.ResultCache) Option {
	return func(s *Solver) {
		s.cache = cache
	}
}

// WithMetrics records cycle and solve metrics on the given collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Solver) {
		s.metrics = c
	}
}

// WithLogger sets a custom structured logger for the solver.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// WithConcurrency bounds how many trajectories are explored at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New creates a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{
		start:       domain.BySuffix(domain.DefaultStartSuffix),
		final:       domain.BySuffix(domain.DefaultFinalSuffix),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// Solve intersects the trajectory sets of every start node and returns the
// smallest shared step.
func (s *Solver) Solve(ctx context.Context, net *domain.Network) (*domain.Solution, error) {
	begin := time.Now()
	sol, err := s.solve(ctx, net)

	outcome := metrics.OutcomeSolved
	switch {
	case errors.Is(err, domain.ErrNoSolution):
		outcome = metrics.OutcomeNoAnswer
	case err != nil:
		outcome = metrics.OutcomeError
	}
	s.metrics.ObserveSolve(outcome, time.Since(begin))

	if err != nil {
		return nil, err
	}
	s.logger.Info("Solved network",
		"steps", sol.Steps,
		"starts", len(sol.Trajectories),
		"duration", time.Since(begin),
	)
	return sol, nil
}

func (s *Solver) solve(ctx context.Context, net *domain.Network) (*domain.Solution, error) {
	trajectories, err := s.Trajectories(ctx, net)
	if err != nil {
		return nil, err
	}

	sets := make([]*ups.UPS, len(trajectories))
	for i, t := range trajectories {
		sets[i] = t.Set
	}
	combined, err := ups.IntersectAll(sets...)
	if err != nil {
		return nil, fmt.Errorf("failed to combine trajectories: %w", err)
	}

	steps, ok := combined.Min()
	if !ok {
		return nil, domain.ErrNoSolution
	}
	return &domain.Solution{
		Steps:        steps,
		Trajectories: trajectories,
		Combined:     combined,
	}, nil
}

// Trajectories runs cycle detection from every start node, sorted by ID.
func (s *Solver) Trajectories(ctx context.Context, net *domain.Network) ([]domain.Trajectory, error) {
	starts := net.Select(s.start)
	if len(starts) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoStartStates, s.start)
	}

	machine := net.Machine(s.final)
	input := []byte(net.Instructions)
	digest := net.Digest()

	out := make([]domain.Trajectory, len(starts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range starts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := s.trajectory(gctx, machine, input, digest, id)
			if err != nil {
				return fmt.Errorf("start %s: %w", id, err)
			}
			out[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Solver) trajectory(ctx context.Context, m *fsm.Machine[string, byte], input []byte, digest, start string) (domain.Trajectory, error) {
	key := fmt.Sprintf("%s:%s:%s", digest, start, s.final)

	if s.cache != nil {
		set, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			s.metrics.ObserveCycle(metrics.OutcomeCached, 0)
			s.logger.Debug("Trajectory cache hit", "start", start)
			return domain.Trajectory{Start: start, Set: set, Cached: true}, nil
		case !errors.Is(err, domain.ErrCacheMiss):
			s.logger.Warn("Result cache unavailable", "start", start, "error", err)
		}
	}

	c, err := m.Cycle(start, input)
	if err != nil {
		s.metrics.ObserveCycle(metrics.OutcomeError, 0)
		return domain.Trajectory{}, err
	}
	set, err := c.Set()
	if err != nil {
		return domain.Trajectory{}, err
	}
	s.metrics.ObserveCycle(metrics.OutcomeComputed, c.StemLen+c.LoopLen)
	s.logger.Debug("Trajectory explored",
		"start", start,
		"stem_len", c.StemLen,
		"loop_len", c.LoopLen,
		"final_hits", len(c.Finals),
	)

	if s.cache != nil {
		if err := s.cache.Put(ctx, key, set); err != nil {
			s.logger.Warn("Failed to cache trajectory", "start", start, "error", err)
		}
	}
	return domain.Trajectory{Start: start, Set: set}, nil
}
