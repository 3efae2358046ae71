package mermaid

import "github.com/matzehuels/mermaidspec/pkg/spec"

// Arrow tokens.
const (
	ArrowSolid  = "-->"
	ArrowDotted = "-.->"
	ArrowThick  = "==>"
)

const (
	maxExprLen       = 20
	truncatedExprLen = 17
	defaultExpr      = "cond"
)

// Arrow returns the arrow token and the (possibly empty) "|label|" for a
// condition. expr is only read for conditional edges.
func Arrow(c spec.Condition, expr string) (arrow, label string) {
	switch c.Kind {
	case spec.ConditionAlways:
		return ArrowSolid, ""
	case spec.ConditionOnSuccess:
		return ArrowSolid, pipeLabel("success")
	case spec.ConditionOnFailure:
		return ArrowDotted, pipeLabel("failure")
	case spec.ConditionConditional:
		return ArrowSolid, pipeLabel(ConditionLabel(expr))
	case spec.ConditionLLMDecide:
		return ArrowThick, pipeLabel("LLM decides")
	default:
		return ArrowSolid, pipeLabel(c.String())
	}
}

// ConditionLabel returns the label text for a conditional edge: "cond" when
// expr is empty, expr cut to 17 characters plus "..." when it is longer than
// 20 characters, expr unchanged otherwise. Lengths count runes.
func ConditionLabel(expr string) string {
	if expr == "" {
		return defaultExpr
	}
	r := []rune(expr)
	if len(r) > maxExprLen {
		return string(r[:truncatedExprLen]) + "..."
	}
	return expr
}

func pipeLabel(s string) string {
	return "|" + s + "|"
}
