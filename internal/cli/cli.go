package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mermaidspec/pkg/buildinfo"
	"github.com/matzehuels/mermaidspec/pkg/observability"
	"github.com/matzehuels/mermaidspec/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = buildinfo.Name
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives diagrams and status lines. Defaults to os.Stdout.
	Out io.Writer

	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "mermaidspec draws agent graph specs as Mermaid flowcharts",
		Long:         `mermaidspec reads agent graph specifications (JSON, YAML or TOML) and renders them as Mermaid flowchart text for docs, wikis and pull requests.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath, c.Logger)
			if err != nil {
				return err
			}
			c.config = cfg

			hooks := &logHooks{logger: c.Logger}
			observability.SetPipelineHooks(hooks)
			observability.SetHTTPHooks(hooks)

			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+displayConfigPath()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// pipelineOptions merges config file defaults into opts for every flag the
// user did not set explicitly.
func (c *CLI) pipelineOptions(cmd *cobra.Command, opts pipeline.Options) pipeline.Options {
	flags := cmd.Flags()
	if !flags.Changed("direction") && c.config.Direction != "" {
		opts.Direction = c.config.Direction
	}
	if !flags.Changed("markdown") && c.config.Markdown {
		opts.Markdown = true
	}
	if !flags.Changed("workers") && c.config.Workers > 0 {
		opts.Workers = c.config.Workers
	}
	opts.Logger = c.Logger
	opts.SetDefaults()
	return opts
}
