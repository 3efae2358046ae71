package spec

import "strings"

// ConditionKind enumerates the edge conditions the system knows about.
// The zero value is [ConditionAlways].
type ConditionKind int

const (
	ConditionAlways ConditionKind = iota
	ConditionOnSuccess
	ConditionOnFailure
	ConditionConditional
	ConditionLLMDecide

	// ConditionOther is the fallback for values outside the known set.
	// The original text lives in Condition.Raw.
	ConditionOther
)

// conditionNames holds the canonical text form of each known kind, indexed by kind.
var conditionNames = [...]string{
	ConditionAlways:      "always",
	ConditionOnSuccess:   "on_success",
	ConditionOnFailure:   "on_failure",
	ConditionConditional: "conditional",
	ConditionLLMDecide:   "llm_decide",
}

// String returns the upper-case kind name, e.g. "ON_SUCCESS" or "OTHER".
func (k ConditionKind) String() string {
	if k >= 0 && int(k) < len(conditionNames) {
		return strings.ToUpper(conditionNames[k])
	}
	return "OTHER"
}

// Condition is the traversal rule of an [Edge]: one of the known kinds, or
// [ConditionOther] carrying the raw value it was built from.
type Condition struct {
	Kind ConditionKind
	Raw  string
}

// Known conditions.
var (
	Always      = Condition{Kind: ConditionAlways}
	OnSuccess   = Condition{Kind: ConditionOnSuccess}
	OnFailure   = Condition{Kind: ConditionOnFailure}
	Conditional = Condition{Kind: ConditionConditional}
	LLMDecide   = Condition{Kind: ConditionLLMDecide}
)

// OtherCondition returns a fallback condition holding raw verbatim.
func OtherCondition(raw string) Condition {
	return Condition{Kind: ConditionOther, Raw: raw}
}

// ParseCondition maps text to a Condition.
// Known names match case-insensitively; the empty string means [Always];
// anything else becomes [ConditionOther] with the text preserved.
func ParseCondition(s string) Condition {
	if s == "" {
		return Always
	}
	for k, name := range conditionNames {
		if strings.EqualFold(s, name) {
			return Condition{Kind: ConditionKind(k)}
		}
	}
	return OtherCondition(s)
}

// String returns the canonical text for known kinds and the raw value otherwise.
func (c Condition) String() string {
	if c.Kind == ConditionOther {
		return c.Raw
	}
	if c.Kind >= 0 && int(c.Kind) < len(conditionNames) {
		return conditionNames[c.Kind]
	}
	return c.Raw
}

// IsOther reports whether c is the fallback variant.
func (c Condition) IsOther() bool { return c.Kind == ConditionOther }

// MarshalText implements encoding.TextMarshaler.
func (c Condition) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using [ParseCondition].
func (c *Condition) UnmarshalText(text []byte) error {
	*c = ParseCondition(string(text))
	return nil
}
