package spec

import (
	"slices"
	"strings"
)

// Well-known node types.
const (
	TypeFunction   = "function"
	TypeRouter     = "router"
	TypeHumanInput = "human_input"
)

// llmMarker is the substring that marks a node type as an LLM step.
const llmMarker = "llm"

// IsLLMType reports whether nodeType names an LLM-backed step.
// Any type containing "llm" qualifies, e.g. "llm_generate" or "llm_tool_use".
func IsLLMType(nodeType string) bool {
	return strings.Contains(nodeType, llmMarker)
}

// =============================================================================
// Graph
// =============================================================================

// Graph is a declarative agent graph: nodes, edges and the entry/terminal
// markers used when drawing it.
type Graph struct {
	ID            string   `json:"id" yaml:"id" toml:"id"`
	GoalID        string   `json:"goal_id,omitempty" yaml:"goal_id,omitempty" toml:"goal_id"`
	EntryNode     string   `json:"entry_node" yaml:"entry_node" toml:"entry_node"`
	TerminalNodes []string `json:"terminal_nodes,omitempty" yaml:"terminal_nodes,omitempty" toml:"terminal_nodes"`
	Nodes         []Node   `json:"nodes" yaml:"nodes" toml:"nodes"`
	Edges         []Edge   `json:"edges" yaml:"edges" toml:"edges"`
}

// IsEntry reports whether id is the graph's entry node. This is plain
// equality: an empty id matches an empty EntryNode.
func (g *Graph) IsEntry(id string) bool {
	return id == g.EntryNode
}

// IsTerminal reports whether id is listed among the terminal nodes.
func (g *Graph) IsTerminal(id string) bool {
	return slices.Contains(g.TerminalNodes, id)
}

// Node returns the first node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of explicit edges (router routes excluded).
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// RouteCount returns the number of routes declared by router nodes.
// Routes on nodes of any other type are ignored, matching how they are drawn.
func (g *Graph) RouteCount() int {
	n := 0
	for _, node := range g.Nodes {
		if node.IsRouter() {
			n += len(node.Routes)
		}
	}
	return n
}

// =============================================================================
// Node
// =============================================================================

// Node is a single step in the graph.
type Node struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Name        string `json:"name" yaml:"name" toml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description"`
	Type        string `json:"node_type" yaml:"node_type" toml:"node_type"`

	// Routes maps a condition label to a target node id. Only meaningful
	// for router nodes.
	Routes Routes `json:"routes,omitempty" yaml:"routes,omitempty" toml:"routes"`
}

// IsRouter reports whether the node type is exactly [TypeRouter].
func (n *Node) IsRouter() bool { return n.Type == TypeRouter }

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed transition between two nodes.
type Edge struct {
	ID        string    `json:"id" yaml:"id" toml:"id"`
	Source    string    `json:"source" yaml:"source" toml:"source"`
	Target    string    `json:"target" yaml:"target" toml:"target"`
	Condition Condition `json:"condition" yaml:"condition" toml:"condition"`

	// ConditionExpr is the guard expression; only read for Conditional edges.
	ConditionExpr string `json:"condition_expr,omitempty" yaml:"condition_expr,omitempty" toml:"condition_expr"`
}
