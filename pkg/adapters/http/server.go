package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/aretw0/lockstep"
	"github.com/aretw0/lockstep/internal/compiler"
	"github.com/aretw0/lockstep/internal/logging"
	"github.com/aretw0/lockstep/internal/metrics"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/ups"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

// maxHorizon bounds the candidates /v1/intersect may scan.
const maxHorizon = 1 << 20

// maxTake bounds the number of elements echoed by /v1/intersect.
const maxTake = 10000

// Network formats accepted by /v1/solve.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// SolveRequest is the body of POST /v1/solve. Unset selectors fall back to
// the server defaults.
type SolveRequest struct {
	Network string           `json:"network"`
	Format  string           `json:"format,omitempty"`
	Start   *domain.Selector `json:"start,omitempty"`
	Final   *domain.Selector `json:"final,omitempty"`
}

// IntersectRequest is the body of POST /v1/intersect.
type IntersectRequest struct {
	Sets []ups.Encoded `json:"sets"`
	// Take is the number of leading elements echoed in the response.
	Take int `json:"take,omitempty"`
}

// IntersectResponse carries the intersection and its first elements.
type IntersectResponse struct {
	Set  *ups.UPS `json:"set"`
	Head []uint64 `json:"head"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves the solver over a small JSON API.
type Server struct {
	start      domain.Selector
	final      domain.Selector
	solverOpts []lockstep.Option
	parser     *compiler.Parser
	metrics    *metrics.Collector
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the selectors used when a request omits them.
func WithDefaults(start, final domain.Selector) Option {
	return func(s *Server) {
		s.start = start
		s.final = final
	}
}

// WithSolverOptions passes shared options (cache, concurrency) to every
// solver the server builds.
func WithSolverOptions(opts ...lockstep.Option) Option {
	return func(s *Server) {
		s.solverOpts = append(s.solverOpts, opts...)
	}
}

// WithMetrics records solves and exposes the collector on /metrics.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Server) {
		s.metrics = c
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the API.
func NewHandler(opts ...Option) http.Handler {
	s := &Server{
		start:  domain.BySuffix(domain.DefaultStartSuffix),
		final:  domain.BySuffix(domain.DefaultFinalSuffix),
		parser: compiler.NewParser(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Post("/v1/solve", s.Solve)
	r.Post("/v1/intersect", s.Intersect)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": lockstep.Version})
}

// Solve handles POST /v1/solve.
func (s *Server) Solve(w http.ResponseWriter, r *http.Request) {
	var body SolveRequest
	if err := decodeBody(w, r, &body); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var (
		net *domain.Network
		err error
	)
	switch strings.ToLower(body.Format) {
	case "", FormatText:
		net, err = s.parser.Parse([]byte(body.Network))
	case FormatYAML:
		net, err = s.parser.ParseYAML([]byte(body.Network))
	default:
		err = fmt.Errorf("unknown format %q", body.Format)
	}
	if err != nil {
		s.fail(w, http.StatusBadRequest, "invalid network", err)
		return
	}

	start, final := s.start, s.final
	if body.Start != nil {
		start = *body.Start
	}
	if body.Final != nil {
		final = *body.Final
	}
	solver := lockstep.New(slices.Concat(s.solverOpts, []lockstep.Option{
		lockstep.WithStart(start),
		lockstep.WithFinal(final),
		lockstep.WithMetrics(s.metrics),
		lockstep.WithLogger(s.logger),
	})...)

	sol, err := solver.Solve(r.Context(), net)
	switch {
	case errors.Is(err, domain.ErrNoSolution), errors.Is(err, domain.ErrNoStartStates), errors.Is(err, ups.ErrOverflow):
		s.fail(w, http.StatusUnprocessableEntity, "no answer", err)
		return
	case err != nil:
		s.fail(w, http.StatusInternalServerError, "solve failed", err)
		return
	}
	writeJSON(w, http.StatusOK, sol)
}

// Intersect handles POST /v1/intersect.
func (s *Server) Intersect(w http.ResponseWriter, r *http.Request) {
	var body IntersectRequest
	if err := decodeBody(w, r, &body); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if body.Take < 0 || body.Take > maxTake {
		s.fail(w, http.StatusBadRequest, "invalid request body", fmt.Errorf("take must be in [0, %d], got %d", maxTake, body.Take))
		return
	}

	sets := make([]*ups.UPS, len(body.Sets))
	for i, enc := range body.Sets {
		set, err := enc.Decode()
		if err != nil {
			s.fail(w, http.StatusBadRequest, "invalid set", fmt.Errorf("set %d: %w", i, err))
			return
		}
		sets[i] = set
	}

	if err := ups.CheckHorizon(maxHorizon, sets...); err != nil {
		s.fail(w, http.StatusUnprocessableEntity, "intersection failed", err)
		return
	}
	combined, err := ups.IntersectAllContext(r.Context(), sets...)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.fail(w, http.StatusServiceUnavailable, "intersection aborted", err)
		return
	case err != nil:
		s.fail(w, http.StatusUnprocessableEntity, "intersection failed", err)
		return
	}
	take := body.Take
	if take == 0 {
		take = 10
	}
	writeJSON(w, http.StatusOK, IntersectResponse{Set: combined, Head: combined.Take(take)})
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error(msg, "status", status, "error", err)
	} else {
		s.logger.Warn(msg, "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: fmt.Sprintf("%s: %v", msg, err)})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
