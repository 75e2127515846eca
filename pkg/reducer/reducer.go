package reducer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-codejson/pkg/document"
	"github.com/goliatone/go-codejson/pkg/schema"
)

// Reducer turns flat submissions into nested documents. It holds no mutable
// state after construction and is safe for concurrent use.
type Reducer struct {
	hints  *hintSet
	schema *schema.Node
	logger *zap.Logger
}

// New constructs a Reducer.
func New(opts ...Option) *Reducer {
	r := &Reducer{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Reduce is a convenience wrapper around New(opts...).Reduce.
func Reduce(data *document.Object, fieldOrder []string, opts ...Option) (*document.Object, error) {
	return New(opts...).Reduce(data, fieldOrder)
}

// Reduce walks fieldOrder and copies the matching values of data into a new
// document. Absent, empty and null values are omitted whether or not the
// field is required. Fields that cannot be encoded are skipped and reported
// through the returned error, which joins one *FieldError per skipped field.
// The returned document is always usable.
func (r *Reducer) Reduce(data *document.Object, fieldOrder []string) (*document.Object, error) {
	var skipped []error
	out := r.reduceObject(data, fieldOrder, "", r.schema, &skipped)
	if len(skipped) == 0 {
		return out, nil
	}
	return out, errors.Join(skipped...)
}

func (r *Reducer) reduceObject(data *document.Object, fieldOrder []string, prefix string, node *schema.Node, skipped *[]error) *document.Object {
	out := document.NewObject()
	for _, field := range fieldOrder {
		if out.Has(field) {
			continue
		}
		value, ok := data.Get(field)
		if !ok || isVacant(value) {
			continue
		}

		path := joinPath(prefix, field)
		var child *schema.Node
		if node != nil {
			child, _ = node.Property(field)
		}

		reduced, keep, err := r.reduceValue(value, path, child, skipped)
		if err != nil {
			fieldErr := &FieldError{Field: path, Err: err}
			r.logger.Warn("skipping field", zap.String("field", path), zap.Error(err))
			*skipped = append(*skipped, fieldErr)
			continue
		}
		if !keep {
			continue
		}
		out.Set(field, reduced)
	}
	return out
}

func (r *Reducer) reduceValue(value any, path string, node *schema.Node, skipped *[]error) (any, bool, error) {
	if r.hints != nil && r.hints.boolean(path) {
		return reduceBoolean(value)
	}

	obj, ok := value.(*document.Object)
	if !ok {
		return value, true, nil
	}

	if r.hints != nil {
		if r.hints.selection(path) {
			selected, err := collapseSelection(obj)
			if err != nil {
				return nil, false, err
			}
			return selected, len(selected) > 0, nil
		}
	} else if isSelectionMap(obj) {
		selected, _ := collapseSelection(obj)
		return selected, len(selected) > 0, nil
	}

	// Single-key objects are kept as submitted unless a tagged field sits
	// inside them.
	if obj.Len() <= 1 && (r.hints == nil || !r.hints.encloses(path)) {
		return obj, obj.Len() > 0, nil
	}

	nested := r.reduceObject(obj, r.nestedOrder(obj, node), path, node, skipped)
	// Dropping vacant siblings can leave a probe-mode object holding only
	// booleans. Collapse it now so a second pass does not.
	if r.hints == nil && isSelectionMap(nested) {
		selected, _ := collapseSelection(nested)
		return selected, len(selected) > 0, nil
	}
	return nested, nested.Len() > 0, nil
}

func (r *Reducer) nestedOrder(obj *document.Object, node *schema.Node) []string {
	own := obj.Keys()
	if r.schema == nil || node == nil || len(node.Properties) == 0 {
		return own
	}
	order := node.PropertyNames()
	declared := make(map[string]struct{}, len(order))
	for _, name := range order {
		declared[name] = struct{}{}
	}
	for _, key := range own {
		if _, ok := declared[key]; !ok {
			order = append(order, key)
		}
	}
	return order
}

func reduceBoolean(value any) (any, bool, error) {
	switch typed := value.(type) {
	case bool:
		return typed, true, nil
	case string:
		switch typed {
		case "true":
			return true, true, nil
		case "false":
			return false, true, nil
		}
	}
	return nil, false, fmt.Errorf("%w: %s", ErrInvalidBoolean, describe(value))
}

// isSelectionMap reports whether every value of obj is a boolean. An empty
// object qualifies and collapses to nothing.
func isSelectionMap(obj *document.Object) bool {
	all := true
	obj.Range(func(_ string, value any) bool {
		_, all = value.(bool)
		return all
	})
	return all
}

// collapseSelection returns the keys mapped to true in the map's own order.
func collapseSelection(obj *document.Object) ([]any, error) {
	selected := make([]any, 0, obj.Len())
	var err error
	obj.Range(func(key string, value any) bool {
		flag, ok := value.(bool)
		if !ok {
			err = fmt.Errorf("%w: option %q is %s", ErrMalformedSelectionMap, key, describe(value))
			return false
		}
		if flag {
			selected = append(selected, key)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return selected, nil
}

// isVacant reports values that never reach the output: null, the empty
// string, empty arrays and arrays whose first row is structurally empty.
func isVacant(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case []any:
		if len(typed) == 0 {
			return true
		}
		row, ok := typed[0].(*document.Object)
		return ok && isBlankObject(row)
	case *document.Object:
		return typed.Len() == 0
	}
	return false
}

// isBlankObject reports whether every value of obj is vacant, which is how an
// untouched repeating-group row is submitted.
func isBlankObject(obj *document.Object) bool {
	blank := true
	obj.Range(func(_ string, value any) bool {
		blank = isVacant(value)
		return blank
	})
	return blank
}

func describe(value any) string {
	if s, ok := value.(string); ok {
		return fmt.Sprintf("%s %q", document.TypeName(value), s)
	}
	return document.TypeName(value)
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
