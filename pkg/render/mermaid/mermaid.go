package mermaid

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/mermaidspec/pkg/spec"
)

// DefaultDirection is the flowchart direction used when callers have no preference.
const DefaultDirection = "TD"

// indent prefixes every node and edge line.
const indent = "    "

// Style classes attached to nodes.
const (
	ClassEntry    = "entry"
	ClassTerminal = "terminal"
)

// classDefs are appended verbatim after the blank separator line.
var classDefs = []string{
	indent + "classDef entry fill:#e1f5fe,stroke:#01579b,stroke-width:2px;",
	indent + "classDef terminal fill:#f1f8e9,stroke:#33691e,stroke-width:2px;",
}

// knownDirections are the direction codes Mermaid understands.
var knownDirections = []string{"TB", "TD", "BT", "RL", "LR"}

// KnownDirection reports whether dir is a direction code Mermaid understands.
// Render does not call it; it exists for callers that want to warn.
func KnownDirection(dir string) bool {
	return slices.Contains(knownDirections, dir)
}

var idReplacer = strings.NewReplacer("-", "_", " ", "_")

// SanitizeID turns an identifier into a Mermaid-safe token by replacing
// every hyphen and space with an underscore.
func SanitizeID(id string) string {
	return idReplacer.Replace(id)
}

// EscapeLabel replaces double quotes with single quotes so the label can be
// wrapped in double quotes. Nothing else is escaped.
func EscapeLabel(name string) string {
	return strings.ReplaceAll(name, `"`, `'`)
}

// Render converts g into Mermaid flowchart text using direction verbatim.
// The result has no trailing newline. g must not be nil.
func Render(g *spec.Graph, direction string) string {
	lines := make([]string, 0, len(g.Nodes)+len(g.Edges)+g.RouteCount()+4)
	lines = append(lines, "flowchart "+direction)

	for i := range g.Nodes {
		lines = append(lines, nodeLine(g, &g.Nodes[i]))
	}
	for i := range g.Edges {
		lines = append(lines, edgeLine(&g.Edges[i]))
	}
	for i := range g.Nodes {
		lines = append(lines, routeLines(&g.Nodes[i])...)
	}

	lines = append(lines, "")
	lines = append(lines, classDefs...)
	return strings.Join(lines, "\n")
}

func nodeLine(g *spec.Graph, n *spec.Node) string {
	shape := ShapeFor(n.Type)
	return fmt.Sprintf("%s%s%s\"%s\"%s%s",
		indent, SanitizeID(n.ID), shape.Open, EscapeLabel(n.Name), shape.Close, classSuffix(g, n.ID))
}

// classSuffix returns the ":::class" marker for id. Entry wins over terminal.
func classSuffix(g *spec.Graph, id string) string {
	switch {
	case g.IsEntry(id):
		return ":::" + ClassEntry
	case g.IsTerminal(id):
		return ":::" + ClassTerminal
	default:
		return ""
	}
}

func edgeLine(e *spec.Edge) string {
	arrow, label := Arrow(e.Condition, e.ConditionExpr)
	return indent + SanitizeID(e.Source) + arrow + label + SanitizeID(e.Target)
}

// routeLines draws a router's routes as plain labelled edges.
// Nodes of any other type contribute nothing, even if they carry routes.
func routeLines(n *spec.Node) []string {
	if !n.IsRouter() || len(n.Routes) == 0 {
		return nil
	}
	src := SanitizeID(n.ID)
	out := make([]string, 0, len(n.Routes))
	for _, r := range n.Routes {
		out = append(out, indent+src+"-->"+pipeLabel(r.Condition)+SanitizeID(r.Target))
	}
	return out
}
