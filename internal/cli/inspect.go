package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mermaidspec/pkg/render/mermaid"
	"github.com/matzehuels/mermaidspec/pkg/spec"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "inspect [file]",
		Short:             "Summarize a spec file",
		Long:              `Print a spec's identifiers and how its nodes and edges will be drawn: node counts per shape and edge counts per condition. Warns about references to unknown nodes and unrecognized conditions.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSpecFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.newRunner().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c.printInspect(g)
			return nil
		},
	}
}

// shapeOrder lists shapes in the order inspect reports them.
var shapeOrder = []mermaid.Shape{
	mermaid.ShapeRounded,
	mermaid.ShapeRhombus,
	mermaid.ShapeParallelogram,
	mermaid.ShapeHexagon,
	mermaid.ShapeRectangle,
}

func (c *CLI) printInspect(g *spec.Graph) {
	w := c.Out

	printTitle(w, orDash(g.ID))
	printKeyValue(w, "goal", orDash(g.GoalID))
	printKeyValue(w, "entry", orDash(g.EntryNode))
	printKeyValue(w, "terminals", orDash(strings.Join(g.TerminalNodes, ", ")))
	printStats(w, g.NodeCount(), g.EdgeCount(), g.RouteCount())

	shapes := make(map[string]int)
	for _, n := range g.Nodes {
		shapes[mermaid.ShapeFor(n.Type).Name]++
	}
	printInfo(w, "nodes by shape")
	for _, s := range shapeOrder {
		if n := shapes[s.Name]; n > 0 {
			printCount(w, s.Name, n)
		}
	}

	conds := make(map[spec.ConditionKind]int)
	for _, e := range g.Edges {
		conds[e.Condition.Kind]++
	}
	printInfo(w, "edges by condition")
	for k := spec.ConditionAlways; k <= spec.ConditionOther; k++ {
		if n := conds[k]; n > 0 {
			printCount(w, strings.ToLower(k.String()), n)
		}
	}

	for _, n := range g.Nodes {
		if len(n.Routes) > 0 && !n.IsRouter() {
			printWarning(w, "node %s has routes but is not a router; they are not drawn", n.ID)
		}
		if n.IsRouter() {
			for _, r := range n.Routes {
				warnUnknownNode(w, g, r.Target, "route %s of node %s", r.Condition, n.ID)
			}
		}
	}
	for _, e := range g.Edges {
		if e.Condition.IsOther() {
			printWarning(w, "edge %s has unrecognized condition %q; drawn as its label", e.ID, e.Condition.String())
		}
		warnUnknownNode(w, g, e.Source, "edge %s", e.ID)
		warnUnknownNode(w, g, e.Target, "edge %s", e.ID)
	}
}

// warnUnknownNode warns when id names no node. Mermaid still draws such
// references, as bare nodes.
func warnUnknownNode(w io.Writer, g *spec.Graph, id, format string, args ...any) {
	if _, ok := g.Node(id); ok {
		return
	}
	printWarning(w, "%s references unknown node %q", fmt.Sprintf(format, args...), id)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
