package schema

import "strings"

// Node is one typed fragment of a JSON Schema document restricted to the
// keywords the form compiler understands. Properties keep declaration order.
type Node struct {
	Types       []string
	Format      string
	Title       string
	Description string
	Default     any
	Enum        []any
	Required    []string
	Properties  []Property
	Items       *Node

	// Content and ClassName belong to the "content" pseudo-type used for
	// descriptive labels injected into compiled forms.
	Content   string
	ClassName string
}

// Property pairs a property name with its schema.
type Property struct {
	Name   string
	Schema *Node
}

const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeNull    = "null"
	// TypeContent is not a JSON Schema type. It marks static descriptive
	// content nodes.
	TypeContent = "content"
)

// TypeIs reports whether the node declares exactly the single type t.
func (n *Node) TypeIs(t string) bool {
	if n == nil || len(n.Types) != 1 {
		return false
	}
	return n.Types[0] == t
}

// TypeIncludes reports whether t appears among the declared types.
func (n *Node) TypeIncludes(t string) bool {
	if n == nil {
		return false
	}
	for _, candidate := range n.Types {
		if candidate == t {
			return true
		}
	}
	return false
}

// TypeLabel renders the declared types for diagnostics.
func (n *Node) TypeLabel() string {
	if n == nil || len(n.Types) == 0 {
		return "<none>"
	}
	return strings.Join(n.Types, "|")
}

// HasEnum reports whether the node restricts values to a literal set.
func (n *Node) HasEnum() bool {
	return n != nil && n.Enum != nil
}

// Property looks up a property schema by name.
func (n *Node) Property(name string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for _, prop := range n.Properties {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}

// PropertyNames returns property names in declaration order. The reducer uses
// this list as its field order.
func (n *Node) PropertyNames() []string {
	if n == nil || len(n.Properties) == 0 {
		return nil
	}
	names := make([]string, 0, len(n.Properties))
	for _, prop := range n.Properties {
		names = append(names, prop.Name)
	}
	return names
}

// RequiredSet returns the node's required names as a set.
func (n *Node) RequiredSet() map[string]struct{} {
	out := make(map[string]struct{})
	if n == nil {
		return out
	}
	for _, name := range n.Required {
		out[name] = struct{}{}
	}
	return out
}

// IsRequired reports whether name appears in the node's required list.
func (n *Node) IsRequired(name string) bool {
	if n == nil {
		return false
	}
	for _, candidate := range n.Required {
		if candidate == name {
			return true
		}
	}
	return false
}
