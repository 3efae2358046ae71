package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	specio "github.com/matzehuels/mermaidspec/pkg/io"
	"github.com/matzehuels/mermaidspec/pkg/observability"
	"github.com/matzehuels/mermaidspec/pkg/render/mermaid"
	"github.com/matzehuels/mermaidspec/pkg/spec"
)

// Runner renders graphs and spec files.
//
// A Runner holds no per-render state; one Runner may be shared by many
// goroutines.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Render converts g to flowchart text.
//
// An unrecognized direction is logged as a warning and still used verbatim.
func (r *Runner) Render(ctx context.Context, g *spec.Graph, opts Options) (Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if g == nil {
		return Result{}, fmt.Errorf("render: nil graph")
	}
	if !mermaid.KnownDirection(opts.Direction) {
		opts.Logger.Warn("unknown flowchart direction, using as-is", "direction", opts.Direction)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, g.ID, g.NodeCount())
	start := time.Now()

	text := mermaid.Render(g, opts.Direction)
	stats := Stats{
		NodeCount:  g.NodeCount(),
		EdgeCount:  g.EdgeCount(),
		RouteCount: g.RouteCount(),
		LineCount:  countLines(text),
		Duration:   time.Since(start),
	}
	hooks.OnRenderComplete(ctx, g.ID, stats.LineCount, stats.Duration, nil)

	if opts.Markdown {
		text = Markdown(text)
	}
	opts.Logger.Debug("rendered graph", "id", g.ID, "nodes", stats.NodeCount, "lines", stats.LineCount)
	return Result{Text: text, Stats: stats}, nil
}

// Load reads and decodes the spec document at path.
func (r *Runner) Load(ctx context.Context, path string) (*spec.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	g, err := specio.ImportSpec(path)
	nodes := 0
	if g != nil {
		nodes = g.NodeCount()
	}
	hooks.OnLoadComplete(ctx, path, nodes, time.Since(start), err)
	return g, err
}

// RenderFile loads the spec document at path and renders it.
func (r *Runner) RenderFile(ctx context.Context, path string, opts Options) (Result, error) {
	g, err := r.Load(ctx, path)
	if err != nil {
		return Result{}, err
	}
	return r.Render(ctx, g, opts)
}

// RenderFiles renders every path with at most opts.Workers files in flight.
// Results are in the same order as paths. The first failure cancels the
// remaining renders and is returned.
func (r *Runner) RenderFiles(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()

	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, path := range paths {
		g.Go(func() error {
			res, err := r.RenderFile(gctx, path, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = FileResult{Path: path, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
