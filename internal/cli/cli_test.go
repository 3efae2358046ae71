package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mermaidspec/pkg/buildinfo"
	"github.com/matzehuels/mermaidspec/pkg/observability"
)

const reviewYAML = `id: review-flow
goal_id: ship-post
entry_node: draft
terminal_nodes: [publish]
nodes:
  - {id: draft, name: Write draft, node_type: llm_generate}
  - id: review
    name: Review
    node_type: router
    routes:
      approve: publish
      revise: draft
  - {id: publish, name: Publish, node_type: function}
  - id: ask
    name: Ask "editor"
    node_type: human_input
edges:
  - {id: e1, source: draft, target: review, condition: on_success}
  - {id: e2, source: draft, target: ask, condition: on_failure}
`

const reviewMermaid = `flowchart TD
    draft{{"Write draft"}}:::entry
    review{"Review"}
    publish("Publish"):::terminal
    ask[/"Ask 'editor'"/]
    draft-->|success|review
    draft-.->|failure|ask
    review-->|approve|publish
    review-->|revise|draft

    classDef entry fill:#e1f5fe,stroke:#01579b,stroke-width:2px;
    classDef terminal fill:#f1f8e9,stroke:#33691e,stroke-width:2px;
`

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command with an isolated config directory.
func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	var stdout, stderr bytes.Buffer
	c := New(&stderr, LogInfo)
	c.Out = &stdout

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())

	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"render", "inspect", "convert", "serve", "completion"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestCompletion(t *testing.T) {
	res := runCLI(t, "completion", "bash")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "mermaidspec")

	res = runCLI(t, "completion", "tcsh")
	assert.Error(t, res.err)
}

func TestRootCommand_Version(t *testing.T) {
	res := runCLI(t, "--version")
	require.NoError(t, res.err)
	assert.Equal(t, buildinfo.Template(), res.stdout)
	assert.True(t, strings.HasPrefix(res.stdout, "mermaidspec dev "))
}

func TestCompletion_SpecFiles(t *testing.T) {
	for _, name := range []string{"render", "inspect", "convert"} {
		res := runCLI(t, "__complete", name, "")
		require.NoError(t, res.err, name)
		assert.Contains(t, res.stdout, "yaml", name)
		assert.Contains(t, res.stdout, "toml", name)
		assert.Contains(t, res.stdout, ":8", name) // ShellCompDirectiveFilterFileExt
	}
}
