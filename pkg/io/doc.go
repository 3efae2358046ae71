// Package io reads and writes agent graph spec documents.
//
// # Formats
//
// Three document formats are understood on input and two on output:
//
//   - JSON (.json): read and write
//   - YAML (.yaml, .yml): read and write
//   - TOML (.toml): read only
//
// All three share the same field names:
//
//	{
//	  "id": "review-flow",
//	  "goal_id": "ship-post",
//	  "entry_node": "draft",
//	  "terminal_nodes": ["publish"],
//	  "nodes": [
//	    {"id": "draft", "name": "Write draft", "node_type": "llm_generate"},
//	    {"id": "review", "name": "Review", "node_type": "router",
//	     "routes": {"approve": "publish", "revise": "draft"}},
//	    {"id": "publish", "name": "Publish", "node_type": "function"}
//	  ],
//	  "edges": [
//	    {"id": "e1", "source": "draft", "target": "review", "condition": "on_success"}
//	  ]
//	}
//
// # Routes
//
// A router's routes may be written as an object or as a list of
// {"condition", "target"} entries. Object order is kept for JSON and YAML.
// TOML tables have no order, so their keys are sorted; use an array of
// tables ([[nodes.routes]]) when order matters.
//
// # Validation
//
// Documents are decoded, not validated: dangling edge endpoints, missing
// entry nodes and unknown node types are all accepted and rendered as-is.
// Only undecodable input is rejected, with [errors.ErrCodeInvalidInput].
//
// [errors.ErrCodeInvalidInput]: github.com/matzehuels/mermaidspec/pkg/errors.ErrCodeInvalidInput
package io
