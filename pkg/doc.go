// Package pkg holds the libraries behind mermaidspec, a tool that draws agent
// graph specs as Mermaid flowcharts.
//
// # Overview
//
//  1. [spec] - The graph model: nodes, edges, conditions and router routes
//  2. [render/mermaid] - Pure conversion of a graph to flowchart text
//  3. [io] - Reading and writing spec documents (JSON, YAML, TOML)
//  4. [pipeline] - Load → render orchestration used by the CLI and server
//  5. [errors], [observability], [buildinfo] - Shared plumbing
//
// # Architecture
//
//	spec document (.json / .yaml / .toml)
//	         ↓
//	    [io] package (decode into spec.Graph)
//	         ↓
//	    [render/mermaid] package (flowchart text)
//	         ↓
//	    stdout, .mmd/.md files, or an HTTP response
//
// # Quick Start
//
//	import (
//	    "fmt"
//	    "github.com/matzehuels/mermaidspec/pkg/io"
//	    "github.com/matzehuels/mermaidspec/pkg/render/mermaid"
//	)
//
//	g, err := io.ImportSpec("flow.yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(mermaid.Render(g, "LR"))
//
// [spec]: github.com/matzehuels/mermaidspec/pkg/spec
// [render/mermaid]: github.com/matzehuels/mermaidspec/pkg/render/mermaid
// [io]: github.com/matzehuels/mermaidspec/pkg/io
// [pipeline]: github.com/matzehuels/mermaidspec/pkg/pipeline
// [errors]: github.com/matzehuels/mermaidspec/pkg/errors
// [observability]: github.com/matzehuels/mermaidspec/pkg/observability
// [buildinfo]: github.com/matzehuels/mermaidspec/pkg/buildinfo
package pkg
