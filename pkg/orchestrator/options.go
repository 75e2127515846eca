package orchestrator

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-codejson/pkg/model"
	"github.com/goliatone/go-codejson/pkg/schema"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom schema loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithLocator controls how page identifiers map onto schema sources.
func WithLocator(locator schema.PageLocator) Option {
	return func(o *Orchestrator) {
		o.locator = locator
	}
}

// WithLogger sets the logger shared with the reducer.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCompileOptions configures the component compiler.
func WithCompileOptions(options ...model.CompilerOption) Option {
	return func(o *Orchestrator) {
		o.compileOptions = append(o.compileOptions, options...)
	}
}

// WithDecorators registers decorators that run against every compiled tree.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithSchemaOrder makes reduced nested objects follow the schema's nested
// declaration order instead of the submitted key order.
func WithSchemaOrder(enabled bool) Option {
	return func(o *Orchestrator) {
		o.schemaOrder = enabled
	}
}

// WithValidation toggles validating reduced documents against the schema.
func WithValidation(enabled bool) Option {
	return func(o *Orchestrator) {
		o.validate = enabled
	}
}
