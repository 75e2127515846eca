package codejson

import (
	"context"
	"fmt"

	"github.com/goliatone/go-codejson/pkg/document"
	"github.com/goliatone/go-codejson/pkg/model"
	"github.com/goliatone/go-codejson/pkg/orchestrator"
	"github.com/goliatone/go-codejson/pkg/validation"
)

// Component aliases the compiled form descriptor.
type Component = model.Component

// Issue aliases a validation or reduction issue.
type Issue = validation.Issue

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// CompilePage loads the schema for page and returns its form components. It
// is the simplest entry point for callers that render forms themselves.
func CompilePage(ctx context.Context, page string, options ...orchestrator.Option) ([]Component, error) {
	return orchestrator.New(options...).Compile(ctx, page)
}

// ReduceJSON reduces a flat JSON submission for page and returns the indented
// code.json payload together with any issues found along the way.
func ReduceJSON(ctx context.Context, page string, submission []byte, options ...orchestrator.Option) ([]byte, []Issue, error) {
	data, err := document.DecodeObject(submission)
	if err != nil {
		return nil, nil, fmt.Errorf("codejson: submission: %w", err)
	}
	result, err := orchestrator.New(options...).Reduce(ctx, page, data)
	if err != nil {
		return nil, nil, err
	}
	raw, err := document.EncodeIndent(result.Document)
	if err != nil {
		return nil, nil, err
	}
	return raw, result.Issues, nil
}

// PageHeading aliases orchestrator.PageHeading.
func PageHeading(page string) orchestrator.Heading {
	return orchestrator.PageHeading(page)
}
