package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mermaidspec/pkg/pipeline"
)

const (
	extMermaid  = ".mmd"
	extMarkdown = ".md"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // file for one input, directory for several; stdout when empty
	pipeline.Options
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Render spec files as Mermaid flowcharts",
		Long: `Render one or more agent graph spec files (.json, .yaml, .yml, .toml) as Mermaid flowchart text.

With no --output the diagrams are printed to stdout. With one input, --output
names the file to write (or an existing directory). With several inputs,
--output is a directory that receives one <name>.mmd (or .md with --markdown)
per input.`,
		Example: `  mermaidspec render flow.yaml
  mermaidspec render -d LR -o docs/flow.mmd flow.yaml
  mermaidspec render --markdown -o docs/diagrams specs/*.json`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeSpecFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Options = c.pipelineOptions(cmd, opts.Options)
			return c.runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Direction, "direction", "d", pipeline.DefaultDirection, "flowchart direction (TD, TB, BT, LR, RL); empty means TD")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or directory")
	cmd.Flags().BoolVar(&opts.Markdown, "markdown", false, "wrap output in a ```mermaid fenced block")
	cmd.Flags().IntVar(&opts.Workers, "workers", pipeline.DefaultWorkers, "files rendered in parallel")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, paths []string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	results, err := c.newRunner().RenderFiles(ctx, paths, opts.Options)
	if err != nil {
		return err
	}

	if opts.output == "" {
		for i, res := range results {
			if i > 0 {
				fmt.Fprintln(c.Out)
			}
			if err := writeText(c.Out, res.Text); err != nil {
				return err
			}
		}
		return nil
	}

	targets, err := outputPaths(paths, opts.output, outputExt(opts.Markdown))
	if err != nil {
		return err
	}
	for i, res := range results {
		if err := writeFile(targets[i], res.Text); err != nil {
			return err
		}
	}

	prog.done("Rendered %d file(s)", len(results))
	for i, res := range results {
		printSuccess(c.Out, "%s", res.Path)
		printStats(c.Out, res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.RouteCount)
		printFile(c.Out, targets[i])
	}
	return nil
}

func outputExt(markdown bool) string {
	if markdown {
		return extMarkdown
	}
	return extMermaid
}

// outputPaths maps every input to the file it is written to. A single input
// goes to output itself unless output is an existing directory; several
// inputs always go into output as a directory.
func outputPaths(inputs []string, output, ext string) ([]string, error) {
	info, statErr := os.Stat(output)
	isDir := statErr == nil && info.IsDir()

	if len(inputs) == 1 && !isDir {
		return []string{output}, nil
	}
	if !isDir {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir %s: %w", output, err)
		}
	}

	out := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, in := range inputs {
		name := baseName(in) + ext
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, in, name)
		}
		seen[name] = in
		out[i] = filepath.Join(output, name)
	}
	return out, nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeText writes text and a trailing newline if it lacks one.
func writeText(w io.Writer, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

func writeFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeText(f, text); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
