package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// Route sends a router node to Target when Condition holds.
type Route struct {
	Condition string `json:"condition" yaml:"condition" toml:"condition"`
	Target    string `json:"target" yaml:"target" toml:"target"`
}

// Routes is an ordered condition→target mapping.
//
// Conditions are unique: [Routes.Set] on an existing condition replaces its
// target in place, so the entry keeps its original position. This mirrors
// how a dictionary treats a repeated key.
type Routes []Route

// Set adds or replaces the target for condition.
func (r *Routes) Set(condition, target string) {
	for i := range *r {
		if (*r)[i].Condition == condition {
			(*r)[i].Target = target
			return
		}
	}
	*r = append(*r, Route{Condition: condition, Target: target})
}

// RoutesOf builds Routes from alternating condition, target pairs.
// It panics on an odd number of arguments.
func RoutesOf(pairs ...string) Routes {
	if len(pairs)%2 != 0 {
		panic("spec: RoutesOf needs condition/target pairs")
	}
	var r Routes
	for i := 0; i < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

// =============================================================================
// JSON
// =============================================================================

// MarshalJSON encodes routes as an object, keeping declaration order.
func (r Routes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rt := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(rt.Condition)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(rt.Target)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts an object or a list of {condition, target} entries.
// Object keys keep the order they appear in the document.
func (r *Routes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = nil
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '[':
		var list []Route
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("routes: %w", err)
		}
		for _, rt := range list {
			r.Set(rt.Condition, rt.Target)
		}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("routes: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("routes: expected object or array, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("routes: %w", err)
		}
		key := tok.(string) // object keys are always strings
		var target string
		if err := dec.Decode(&target); err != nil {
			return fmt.Errorf("routes[%s]: %w", key, err)
		}
		r.Set(key, target)
	}
	return nil
}

// =============================================================================
// YAML
// =============================================================================

// MarshalYAML encodes routes as a mapping, keeping declaration order.
func (r Routes) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, rt := range r {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: rt.Condition},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: rt.Target},
		)
	}
	return node, nil
}

// UnmarshalYAML accepts a mapping or a sequence of {condition, target} entries.
func (r *Routes) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode {
		value = value.Alias
	}
	*r = nil
	switch value.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			var key, target string
			if err := value.Content[i].Decode(&key); err != nil {
				return fmt.Errorf("routes: line %d: %w", value.Content[i].Line, err)
			}
			if err := value.Content[i+1].Decode(&target); err != nil {
				return fmt.Errorf("routes[%s]: line %d: %w", key, value.Content[i+1].Line, err)
			}
			r.Set(key, target)
		}
		return nil
	case yaml.SequenceNode:
		var list []Route
		if err := value.Decode(&list); err != nil {
			return fmt.Errorf("routes: %w", err)
		}
		for _, rt := range list {
			r.Set(rt.Condition, rt.Target)
		}
		return nil
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			return nil
		}
	}
	return fmt.Errorf("routes: line %d: expected mapping or sequence", value.Line)
}

// =============================================================================
// TOML
// =============================================================================

// UnmarshalTOML implements toml.Unmarshaler.
//
// An array of tables ([[nodes.routes]]) keeps its order. A plain table does
// not carry key order through the TOML decoder, so its keys are sorted to
// keep output deterministic.
func (r *Routes) UnmarshalTOML(data any) error {
	*r = nil
	switch v := data.(type) {
	case map[string]any:
		for _, key := range slices.Sorted(maps.Keys(v)) {
			target, ok := v[key].(string)
			if !ok {
				return fmt.Errorf("routes[%s]: target must be a string, got %T", key, v[key])
			}
			r.Set(key, target)
		}
		return nil
	case []map[string]any:
		for i, entry := range v {
			if err := r.setTOMLEntry(i, entry); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for i, item := range v {
			entry, ok := item.(map[string]any)
			if !ok {
				return fmt.Errorf("routes[%d]: expected table, got %T", i, item)
			}
			if err := r.setTOMLEntry(i, entry); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("routes: expected table or array of tables, got %T", data)
}

func (r *Routes) setTOMLEntry(i int, entry map[string]any) error {
	cond, ok := entry["condition"].(string)
	if !ok {
		return fmt.Errorf("routes[%d]: condition must be a string", i)
	}
	target, ok := entry["target"].(string)
	if !ok {
		return fmt.Errorf("routes[%d]: target must be a string", i)
	}
	r.Set(cond, target)
	return nil
}
