// Package render groups the diagram renderers.
//
// # Mermaid
//
// The [mermaid] subpackage turns a [spec.Graph] into Mermaid flowchart text.
// Rendering is a pure function of the graph and a direction string: no I/O,
// no shared state, and identical input always yields identical output.
//
//	text := mermaid.Render(g, mermaid.DefaultDirection)
//
// [mermaid]: github.com/matzehuels/mermaidspec/pkg/render/mermaid
// [spec.Graph]: github.com/matzehuels/mermaidspec/pkg/spec.Graph
package render
