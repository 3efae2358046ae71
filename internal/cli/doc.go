// Package cli implements the mermaidspec command-line interface.
//
// The CLI turns agent graph spec documents into Mermaid flowcharts. It is
// built on cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - render: Write flowchart text for one or more spec files
//   - inspect: Summarize a spec (entry, terminals, shapes, conditions)
//   - convert: Re-encode a spec document as JSON or YAML
//   - serve: Render specs over HTTP
//   - completion: Generate shell completion scripts
//
// # Configuration
//
// Defaults for direction, markdown output, worker count and the server are
// read from a TOML file at $XDG_CONFIG_HOME/mermaidspec/config.toml
// (~/.config/mermaidspec/config.toml when XDG_CONFIG_HOME is unset), or from
// the file named by --config. Flags given on the command line win over the
// file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli
