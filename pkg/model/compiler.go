package model

import (
	"github.com/goliatone/go-codejson/internal/model"
	"github.com/goliatone/go-codejson/pkg/reducer"
	"github.com/goliatone/go-codejson/pkg/schema"
)

// Compiler converts object schemas into component trees.
type Compiler interface {
	Compile(root *schema.Node) ([]Component, error)
}

// CompilerOption configures the compiler behaviour.
type CompilerOption func(*model.Options)

// WithLabeler overrides the label generation function. Labels default to the
// raw field name.
func WithLabeler(labeler func(string) string) CompilerOption {
	return func(opts *model.Options) {
		opts.Labeler = labeler
	}
}

// WithHumanizedLabels renders "repositoryURL" as "Repository URL".
func WithHumanizedLabels() CompilerOption {
	return WithLabeler(model.HumanizeLabel)
}

// WithoutCredentialField drops the trailing credential input.
func WithoutCredentialField() CompilerOption {
	return func(opts *model.Options) {
		opts.AppendCredentialField = false
	}
}

// WithoutSubmitAction drops the trailing submit action.
func WithoutSubmitAction() CompilerOption {
	return func(opts *model.Options) {
		opts.AppendSubmitAction = false
	}
}

// WithCredentialField customises the credential input.
func WithCredentialField(key, label, description string) CompilerOption {
	return func(opts *model.Options) {
		opts.AppendCredentialField = true
		opts.CredentialKey = key
		opts.CredentialLabel = label
		opts.CredentialDescription = description
	}
}

// WithSubmitAction customises the submit action.
func WithSubmitAction(key, label string) CompilerOption {
	return func(opts *model.Options) {
		opts.AppendSubmitAction = true
		opts.SubmitKey = key
		opts.SubmitLabel = label
	}
}

// NewCompiler returns a Compiler backed by the internal implementation.
func NewCompiler(options ...CompilerOption) Compiler {
	cfg := model.DefaultOptions()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return model.New(cfg)
}

// Classify reports the component kind a schema node compiles to.
func Classify(node *schema.Node) (Kind, error) {
	return model.Classify(node)
}

// Hints derives reducer hints from a compiled tree.
func Hints(components []Component) reducer.Hints {
	return model.Hints(components)
}

// ScaffoldingKeys returns the keys of components that are not part of the
// schema: the credential input and the submit action.
func ScaffoldingKeys(components []Component) []string {
	var keys []string
	for _, component := range components {
		if component.Kind == KindSecret || component.Kind == KindSubmit {
			keys = append(keys, component.Key)
		}
	}
	return keys
}
