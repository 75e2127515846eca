package tui

import (
	"strings"

	"github.com/goliatone/go-codejson/pkg/document"
)

// State resolves prefilled values by dotted component path. Containers are
// nested objects; repeating-group rows are not addressable.
type State struct {
	values *document.Object
}

// NewState seeds the state with prefilled values.
func NewState(prefill *document.Object) *State {
	if prefill == nil {
		return &State{values: document.NewObject()}
	}
	return &State{values: prefill.Clone()}
}

// GetValue resolves a dotted path into the prefilled values.
func (s *State) GetValue(path string) (any, bool) {
	if s == nil || s.values == nil || path == "" {
		return nil, false
	}
	current := s.values
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		value, ok := current.Get(segment)
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return value, true
		}
		next, ok := value.(*document.Object)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// String returns the prefilled value at path rendered for an input default.
func (s *State) String(path string) string {
	value, ok := s.GetValue(path)
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return typed
	case document.Number:
		return typed.String()
	case bool:
		if typed {
			return "true"
		}
		return "false"
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			if text, ok := item.(string); ok {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// Selected returns the options marked true in a prefilled selection map.
func (s *State) Selected(path string) []string {
	value, ok := s.GetValue(path)
	if !ok {
		return nil
	}
	var out []string
	switch typed := value.(type) {
	case *document.Object:
		typed.Range(func(key string, flag any) bool {
			if selected, ok := flag.(bool); ok && selected {
				out = append(out, key)
			}
			return true
		})
	case []any:
		for _, item := range typed {
			if text, ok := item.(string); ok {
				out = append(out, text)
			}
		}
	}
	return out
}
