package reducer

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-codejson/pkg/schema"
)

// Option customises a Reducer.
type Option func(*Reducer)

// WithHints tags multi-select and boolean-select fields explicitly.
func WithHints(h Hints) Option {
	return func(r *Reducer) {
		r.hints = newHintSet(h)
	}
}

// WithSchemaOrder makes nested objects follow the declaration order of the
// matching nested schema. Keys unknown to the schema follow in their own
// order. Without it nested objects keep the submitted key order.
func WithSchemaOrder(root *schema.Node) Option {
	return func(r *Reducer) {
		r.schema = root
	}
}

// WithLogger sets the logger used to report skipped fields.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Reducer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
