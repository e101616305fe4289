package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/aretw0/lockstep"
	"github.com/aretw0/lockstep/internal/compiler"
	"github.com/aretw0/lockstep/internal/logging"
	"github.com/aretw0/lockstep/internal/presentation/graph"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/ups"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SolveArgs are the arguments of the solve tool.
type SolveArgs struct {
	Network string `json:"network"`
	Format  string `json:"format,omitempty"`
	Start   string `json:"start,omitempty"`
	Final   string `json:"final,omitempty"`
}

// SolveResponse is the structured result of the solve tool.
type SolveResponse struct {
	Steps        uint64            `json:"steps" jsonschema_description:"First step at which every trajectory stands on a final node"`
	Trajectories []TrajectoryBrief `json:"trajectories" jsonschema_description:"Per start node summary"`
}

// TrajectoryBrief summarizes one trajectory.
type TrajectoryBrief struct {
	Start   string   `json:"start"`
	StemLen uint64   `json:"stem_len"`
	LoopLen uint64   `json:"loop_len"`
	Head    []uint64 `json:"head"`
}

// IntersectArgs are the arguments of the intersect tool.
type IntersectArgs struct {
	Sets string `json:"sets"`
	Take int    `json:"take,omitempty"`
}

// IntersectResponse is the structured result of the intersect tool.
type IntersectResponse struct {
	Set  ups.Encoded `json:"set" jsonschema_description:"The intersection in stem/loop form"`
	Head []uint64    `json:"head" jsonschema_description:"Leading elements of the intersection"`
}

// maxHorizon bounds the candidates the intersect tool may scan.
const maxHorizon = 1 << 20

// headLen is the number of leading elements reported when take is unset.
const headLen = 5

// Server exposes the solver as an MCP server.
type Server struct {
	start      domain.Selector
	final      domain.Selector
	solverOpts []lockstep.Option
	parser     *compiler.Parser
	logger     *slog.Logger
	mcpServer  *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the selectors used when a call omits them.
func WithDefaults(start, final domain.Selector) Option {
	return func(s *Server) {
		s.start = start
		s.final = final
	}
}

// WithSolverOptions passes shared options to every solver the server builds.
func WithSolverOptions(opts ...lockstep.Option) Option {
	return func(s *Server) {
		s.solverOpts = append(s.solverOpts, opts...)
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(opts ...Option) *Server {
	s := &Server{
		start:     domain.BySuffix(domain.DefaultStartSuffix),
		final:     domain.BySuffix(domain.DefaultFinalSuffix),
		parser:    compiler.NewParser(),
		mcpServer: server.NewMCPServer("lockstep-mcp", lockstep.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP endpoints over SSE until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	solveTool := mcp.NewTool("solve",
		mcp.WithDescription("Find the first step at which every trajectory from the start nodes stands on a final node."),
		mcp.WithString("network", mcp.Required(), mcp.Description("Network definition: the instruction line, a blank line, then ID = (LEFT, RIGHT) lines")),
		mcp.WithString("format", mcp.Description("Network format: text (default) or yaml")),
		mcp.WithString("start", mcp.Description("Start selector, name=ID or suffix=S (default suffix=A)")),
		mcp.WithString("final", mcp.Description("Final selector, name=ID or suffix=S (default suffix=Z)")),
		mcp.WithOutputSchema[SolveResponse](),
	)
	s.mcpServer.AddTool(solveTool, mcp.NewStructuredToolHandler(s.handleSolve))

	intersectTool := mcp.NewTool("intersect",
		mcp.WithDescription("Intersect ultimately periodic sets given in stem/loop form."),
		mcp.WithString("sets", mcp.Required(), mcp.Description(`JSON array of sets, each {"stem_len":n,"stem":[..],"loop_len":p,"loop":[..]}`)),
		mcp.WithNumber("take", mcp.Description("Number of leading elements to return")),
		mcp.WithOutputSchema[IntersectResponse](),
	)
	s.mcpServer.AddTool(intersectTool, mcp.NewStructuredToolHandler(s.handleIntersect))

	s.mcpServer.AddTool(mcp.NewTool("graph",
		mcp.WithDescription("Render a network as a Mermaid flowchart."),
		mcp.WithString("network", mcp.Required(), mcp.Description("Network definition in text format")),
	), s.handleGraph)
}

func (s *Server) handleSolve(ctx context.Context, request mcp.CallToolRequest, args SolveArgs) (SolveResponse, error) {
	net, err := s.parse(args.Network, args.Format)
	if err != nil {
		return SolveResponse{}, err
	}
	start, err := s.selector(args.Start, s.start)
	if err != nil {
		return SolveResponse{}, err
	}
	final, err := s.selector(args.Final, s.final)
	if err != nil {
		return SolveResponse{}, err
	}

	solver := lockstep.New(slices.Concat(s.solverOpts, []lockstep.Option{
		lockstep.WithStart(start),
		lockstep.WithFinal(final),
		lockstep.WithLogger(s.logger),
	})...)
	sol, err := solver.Solve(ctx, net)
	if err != nil {
		s.logger.Warn("MCP solve failed", "error", err)
		return SolveResponse{}, fmt.Errorf("solve failed: %w", err)
	}

	resp := SolveResponse{Steps: sol.Steps}
	for _, t := range sol.Trajectories {
		resp.Trajectories = append(resp.Trajectories, TrajectoryBrief{
			Start:   t.Start,
			StemLen: t.Set.StemLen(),
			LoopLen: t.Set.LoopLen(),
			Head:    t.Set.Take(headLen),
		})
	}
	return resp, nil
}

func (s *Server) handleIntersect(ctx context.Context, request mcp.CallToolRequest, args IntersectArgs) (IntersectResponse, error) {
	var encoded []ups.Encoded
	if err := json.Unmarshal([]byte(args.Sets), &encoded); err != nil {
		return IntersectResponse{}, fmt.Errorf("sets must be a JSON array: %w", err)
	}
	sets := make([]*ups.UPS, len(encoded))
	for i, enc := range encoded {
		set, err := enc.Decode()
		if err != nil {
			return IntersectResponse{}, fmt.Errorf("set %d: %w", i, err)
		}
		sets[i] = set
	}
	if err := ups.CheckHorizon(maxHorizon, sets...); err != nil {
		return IntersectResponse{}, err
	}
	combined, err := ups.IntersectAllContext(ctx, sets...)
	if err != nil {
		return IntersectResponse{}, err
	}

	take := args.Take
	if take <= 0 {
		take = headLen
	}
	return IntersectResponse{Set: combined.Encode(), Head: combined.Take(take)}, nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("network")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	net, err := s.parse(text, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(net, s.start, s.final, nil)), nil
}

func (s *Server) parse(text, format string) (*domain.Network, error) {
	switch format {
	case "", "text":
		return s.parser.Parse([]byte(text))
	case "yaml":
		return s.parser.ParseYAML([]byte(text))
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func (s *Server) selector(arg string, fallback domain.Selector) (domain.Selector, error) {
	if arg == "" {
		return fallback, nil
	}
	sel, err := domain.ParseSelector(arg)
	if err != nil {
		return domain.Selector{}, fmt.Errorf("invalid selector: %w", err)
	}
	return sel, nil
}
