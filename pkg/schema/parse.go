package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-codejson/pkg/document"
)

// Parse decodes a JSON or YAML schema payload into a Node tree. Keywords the
// compiler does not use are ignored.
func Parse(raw []byte) (*Node, error) {
	value, err := document.DecodeAuto(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: parse: %w", err)
	}
	return FromValue(value)
}

// ParseDocument parses the payload held by doc.
func ParseDocument(doc Document) (*Node, error) {
	node, err := Parse(doc.Raw())
	if err != nil {
		return nil, fmt.Errorf("%w (source %s)", err, doc.Location())
	}
	return node, nil
}

// FromValue converts an already decoded value tree into a Node.
func FromValue(value any) (*Node, error) {
	return nodeFromValue(value, "#")
}

func nodeFromValue(value any, path string) (*Node, error) {
	obj, ok := value.(*document.Object)
	if !ok || obj == nil {
		return nil, syntaxError(path, "node must be an object")
	}

	node := &Node{
		Format:      strings.TrimSpace(readString(obj, "format")),
		Title:       strings.TrimSpace(readString(obj, "title")),
		Description: readString(obj, "description"),
		Content:     readString(obj, "content"),
		ClassName:   strings.TrimSpace(readString(obj, "className")),
	}
	if def, ok := obj.Get("default"); ok {
		node.Default = def
	}

	types, err := readTypes(obj, path)
	if err != nil {
		return nil, err
	}
	node.Types = types

	if raw, ok := obj.Get("enum"); ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, syntaxError(path, "enum must be an array")
		}
		node.Enum = append(make([]any, 0, len(list)), list...)
	}

	if raw, ok := obj.Get("required"); ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, syntaxError(path, "required must be an array")
		}
		required := make([]string, 0, len(list))
		for idx, item := range list {
			name, ok := item.(string)
			if !ok || strings.TrimSpace(name) == "" {
				return nil, syntaxError(path, "required[%d] must be a string", idx)
			}
			required = append(required, name)
		}
		node.Required = required
	}

	if raw, ok := obj.Get("properties"); ok {
		props, ok := raw.(*document.Object)
		if !ok {
			return nil, syntaxError(path, "properties must be an object")
		}
		node.Properties = make([]Property, 0, props.Len())
		for _, name := range props.Keys() {
			child, _ := props.Get(name)
			converted, err := nodeFromValue(child, joinPath(path, "properties", name))
			if err != nil {
				return nil, err
			}
			node.Properties = append(node.Properties, Property{Name: name, Schema: converted})
		}
	}

	if raw, ok := obj.Get("items"); ok {
		switch typed := raw.(type) {
		case *document.Object:
			items, err := nodeFromValue(typed, joinPath(path, "items"))
			if err != nil {
				return nil, err
			}
			node.Items = items
		case []any:
			return nil, syntaxError(path, "tuple items are not supported")
		default:
			return nil, syntaxError(path, "items must be an object")
		}
	}

	return node, nil
}

func readTypes(obj *document.Object, path string) ([]string, error) {
	raw, ok := obj.Get("type")
	if !ok || raw == nil {
		return nil, nil
	}
	switch typed := raw.(type) {
	case string:
		value := strings.TrimSpace(typed)
		if value == "" {
			return nil, nil
		}
		return []string{value}, nil
	case []any:
		out := make([]string, 0, len(typed))
		for idx, item := range typed {
			value, ok := item.(string)
			if !ok || strings.TrimSpace(value) == "" {
				return nil, syntaxError(path, "type[%d] must be a string", idx)
			}
			out = append(out, strings.TrimSpace(value))
		}
		return out, nil
	default:
		return nil, syntaxError(path, "type must be a string or array")
	}
}

func readString(obj *document.Object, key string) string {
	raw, ok := obj.Get(key)
	if !ok {
		return ""
	}
	value, ok := raw.(string)
	if !ok {
		return ""
	}
	return value
}

// SyntaxError reports a malformed schema keyword. Pointer locates the
// offending node as a JSON pointer rooted at "#".
type SyntaxError struct {
	Pointer string
	Reason  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("schema: %s at %s", e.Reason, e.Pointer)
}

func syntaxError(pointer, format string, args ...any) error {
	return &SyntaxError{Pointer: pointer, Reason: fmt.Sprintf(format, args...)}
}

func joinPath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, segment := range segments {
		b.WriteByte('/')
		segment = strings.ReplaceAll(segment, "~", "~0")
		segment = strings.ReplaceAll(segment, "/", "~1")
		b.WriteString(segment)
	}
	return b.String()
}
