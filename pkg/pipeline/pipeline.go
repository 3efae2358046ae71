// Package pipeline runs the load → render steps shared by the CLI and the
// HTTP server.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	res, err := runner.RenderFile(ctx, "flow.yaml", pipeline.Options{Direction: "LR"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Text)
//
// Several files can be rendered concurrently with [Runner.RenderFiles]; at
// most [Options.Workers] files are in flight at once and results come back
// in input order.
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mermaidspec/pkg/render/mermaid"
)

const (
	// DefaultDirection is the flowchart direction used when none is given.
	DefaultDirection = mermaid.DefaultDirection

	// DefaultWorkers bounds concurrent file renders.
	DefaultWorkers = 4
)

// Options configures a render.
type Options struct {
	// Direction is embedded verbatim in the flowchart header. Empty means
	// [DefaultDirection]; call mermaid.Render directly for an empty header.
	Direction string `json:"direction,omitempty"`

	// Markdown wraps the output in a ```mermaid fenced block.
	Markdown bool `json:"markdown,omitempty"`

	// Workers bounds parallelism in RenderFiles.
	Workers int `json:"workers,omitempty"`

	Logger *log.Logger `json:"-"`
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Result is the output of rendering one graph.
type Result struct {
	// Text is the flowchart, fenced when Options.Markdown is set.
	Text  string
	Stats Stats
}

// Stats describes a rendered graph.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	RouteCount int
	LineCount  int // lines of flowchart text, excluding any fence
	Duration   time.Duration
}

// FileResult pairs a rendered Result with the file it came from.
type FileResult struct {
	Path string
	Result
}

// Markdown wraps flowchart text in a fenced mermaid code block.
func Markdown(text string) string {
	return "```mermaid\n" + text + "\n```\n"
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
