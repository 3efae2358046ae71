package cli

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/mermaidspec/pkg/errors"
	specio "github.com/matzehuels/mermaidspec/pkg/io"
	"github.com/matzehuels/mermaidspec/pkg/spec"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var to, output string

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Re-encode a spec file as JSON or YAML",
		Example: `  mermaidspec convert flow.toml --to yaml
  mermaidspec convert flow.yaml -o flow.json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSpecFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := convertFormat(to, output)
			if err != nil {
				return err
			}

			g, err := c.newRunner().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output == "" {
				return specio.WriteSpec(g, c.Out, format)
			}
			if err := exportAs(g, output, format); err != nil {
				return err
			}
			printSuccess(c.Out, "Converted %s", args[0])
			printFile(c.Out, output)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "target format: json or yaml (default: from --output extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

// convertFormat resolves the target format from --to, falling back to the
// extension of --output.
func convertFormat(to, output string) (specio.Format, error) {
	var (
		format specio.Format
		err    error
	)
	switch {
	case to != "":
		format, err = specio.ParseFormat(to)
	case output != "":
		format, err = specio.FormatFromPath(output)
	default:
		return "", errs.New(errs.ErrCodeInvalidFormat, "--to is required when writing to stdout")
	}
	if err != nil {
		return "", err
	}
	if !slices.Contains(specio.WriteFormats, string(format)) {
		return "", errs.New(errs.ErrCodeUnsupported, "cannot write %s (supported: %s)", format, strings.Join(specio.WriteFormats, ", "))
	}
	return format, nil
}

// exportAs writes g to path in format, which may differ from what the
// extension of path suggests.
func exportAs(g *spec.Graph, path string, format specio.Format) error {
	if f, err := specio.FormatFromPath(path); err == nil && f == format {
		return specio.ExportSpec(g, path)
	}
	var buf bytes.Buffer
	if err := specio.WriteSpec(g, &buf, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
