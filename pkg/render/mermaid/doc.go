// Package mermaid renders agent graph specifications as Mermaid flowcharts.
//
// # Overview
//
// [Render] is a pure function: it reads a [spec.Graph] once and returns a new
// string. It never mutates or retains the graph, performs no I/O and is safe
// to call from many goroutines at once.
//
//	text := mermaid.Render(g, mermaid.DefaultDirection)
//
// The direction is embedded verbatim after "flowchart". Mermaid understands
// TB, TD, BT, RL and LR; [KnownDirection] reports whether a code is one of
// them, but Render itself accepts any string.
//
// # Output Layout
//
// Lines are emitted in a fixed order:
//
//  1. flowchart <direction>
//  2. one line per node, in graph order
//  3. one line per edge, in graph order
//  4. one line per route of each router node
//  5. a blank line
//  6. the entry and terminal classDef lines
//
// Router routes are drawn in addition to explicit edges. An edge that
// duplicates a route is drawn twice.
//
// # Node Shapes
//
// Shapes are picked by the first matching rule:
//
//	function      ( "name" )     rounded rectangle
//	router        { "name" }     rhombus
//	human_input   [/ "name" /]   parallelogram
//	*llm*         {{ "name" }}   hexagon
//	anything else [ "name" ]     rectangle
//
// The entry node gets the ":::entry" class; terminal nodes get ":::terminal".
// A node that is both is drawn as entry.
//
// # Edge Arrows
//
//	ALWAYS       a-->b
//	ON_SUCCESS   a-->|success|b
//	ON_FAILURE   a-.->|failure|b
//	CONDITIONAL  a-->|expr|b        (expr longer than 20 chars is cut to 17 + "...")
//	LLM_DECIDE   a==>|LLM decides|b
//	other        a-->|raw value|b
//
// # Identifiers
//
// Hyphens and spaces in identifiers become underscores ([SanitizeID]).
// Distinct ids can collide after sanitizing ("a-b" and "a b"); this is not
// detected. Dangling references are not detected either: an edge to an
// unknown node is drawn with whatever id it names.
package mermaid
