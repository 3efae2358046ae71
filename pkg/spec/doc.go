// Package spec defines the declarative agent-graph specification rendered by
// mermaidspec.
//
// # Overview
//
// A [Graph] is a plain value: an entry node, a set of terminal nodes, an
// ordered list of [Node] values and an ordered list of [Edge] values. The
// package does not validate references between them. An edge may point at a
// node that does not exist, and an entry node may be missing entirely;
// consumers decide what that means (the Mermaid renderer simply emits the
// dangling identifier).
//
// # Node Types
//
// Node types form an open set. Three are recognized exactly:
//
//   - [TypeFunction]: deterministic code step
//   - [TypeRouter]: branches via its [Routes]
//   - [TypeHumanInput]: waits for a person
//
// Any type containing "llm" (for example "llm_generate" or "llm_tool_use")
// is treated as an LLM step, see [IsLLMType]. Every other string is allowed
// and falls back to a generic step.
//
// # Conditions
//
// [Condition] is a closed set of kinds plus one fallback:
//
//	spec.Always                  // always traverse
//	spec.OnSuccess               // source succeeded
//	spec.OnFailure               // source failed
//	spec.Conditional             // guarded by Edge.ConditionExpr
//	spec.LLMDecide               // an LLM picks the branch
//	spec.OtherCondition("retry") // anything else, kept verbatim
//
// Text forms are parsed case-insensitively by [ParseCondition], so "always",
// "ALWAYS" and "Always" are the same condition. Unknown values are kept as
// [ConditionOther] with the raw text preserved.
//
// # Routes
//
// Router nodes carry an ordered label→target mapping. [Routes] keeps the
// order in which the document declared the entries, so output derived from
// it is deterministic. It decodes from an object ({"yes": "end"}) or from a
// list of {condition, target} entries in JSON, YAML and TOML.
//
// # Concurrency
//
// Values in this package hold no locks. Concurrent reads are safe; mutation
// must be synchronized by the caller.
package spec
