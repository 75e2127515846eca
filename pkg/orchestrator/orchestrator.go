package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	internalloader "github.com/goliatone/go-codejson/internal/loader"
	"github.com/goliatone/go-codejson/pkg/document"
	"github.com/goliatone/go-codejson/pkg/model"
	"github.com/goliatone/go-codejson/pkg/reducer"
	"github.com/goliatone/go-codejson/pkg/schema"
	"github.com/goliatone/go-codejson/pkg/validation"
	"github.com/goliatone/go-codejson/schemas"
)

// Orchestrator coordinates the page pipelines: load → compile for rendering
// and load → reduce → validate for submissions. It defaults to the embedded
// page schemas. Configuration is fixed at construction so an Orchestrator is
// safe for concurrent use.
type Orchestrator struct {
	loader         schema.Loader
	locator        schema.PageLocator
	compiler       model.Compiler
	compileOptions []model.CompilerOption
	decorators     model.DecoratorChain
	logger         *zap.Logger
	schemaOrder    bool
	validate       bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:   zap.NewNop(),
		validate: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.loader == nil {
		o.loader = internalloader.New(schema.NewLoaderOptions(schema.WithFileSystem(schemas.FS())))
	}
	if o.locator == nil {
		o.locator = schema.FSLocator{}
	}
	o.compiler = model.NewCompiler(o.compileOptions...)
	return o
}

// Result is the outcome of reducing a submission.
type Result struct {
	Document *document.Object  `json:"document"`
	Issues   []validation.Issue `json:"issues"`
}

// Document loads the raw schema document for page.
func (o *Orchestrator) Document(ctx context.Context, page string) (schema.Document, error) {
	if ctx == nil {
		return schema.Document{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return schema.Document{}, err
	}
	page = strings.TrimSpace(page)
	if page == "" {
		page = schema.DefaultPage
	}

	src, err := o.locator.Locate(page)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: %w", err)
	}
	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return schema.Document{}, o.loadFailure(page, src.Location(), err)
	}
	return doc.WithPage(page), nil
}

// Schema loads and parses the schema for page. Parse failures are reported as
// load failures: the page is not ready either way.
func (o *Orchestrator) Schema(ctx context.Context, page string) (*schema.Node, error) {
	doc, err := o.Document(ctx, page)
	if err != nil {
		return nil, err
	}
	node, err := schema.ParseDocument(doc)
	if err != nil {
		return nil, o.loadFailure(doc.Page(), doc.Location(), err)
	}
	return node, nil
}

// Compile loads the schema for page and compiles its component tree. On any
// failure no components are returned.
func (o *Orchestrator) Compile(ctx context.Context, page string) ([]model.Component, error) {
	node, err := o.Schema(ctx, page)
	if err != nil {
		return nil, err
	}
	return o.compile(node)
}

func (o *Orchestrator) compile(node *schema.Node) ([]model.Component, error) {
	components, err := o.compiler.Compile(node)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: compile: %w", err)
	}
	if err := o.decorators.Decorate(components); err != nil {
		return nil, fmt.Errorf("orchestrator: decorate components: %w", err)
	}
	return components, nil
}

// Reduce loads the schema for page and reduces a flat submission into a
// document ordered by the schema's properties. Skipped fields and, when
// validation is enabled, schema violations are reported as issues; they do
// not fail the reduction.
func (o *Orchestrator) Reduce(ctx context.Context, page string, data *document.Object) (Result, error) {
	node, err := o.Schema(ctx, page)
	if err != nil {
		return Result{}, err
	}

	opts := []reducer.Option{reducer.WithLogger(o.logger)}
	if components, err := o.compiler.Compile(node); err == nil {
		opts = append(opts, reducer.WithHints(model.Hints(components)))
	} else {
		o.logger.Warn("reducing without field hints", zap.String("page", page), zap.Error(err))
	}
	if o.schemaOrder {
		opts = append(opts, reducer.WithSchemaOrder(node))
	}

	reduced, err := reducer.Reduce(data, node.PropertyNames(), opts...)
	result := Result{Document: reduced, Issues: []validation.Issue{}}
	for _, fieldErr := range reducer.FieldErrors(err) {
		result.Issues = append(result.Issues, validation.Issue{
			Field:   fieldErr.Field,
			Message: fieldErr.Err.Error(),
		})
	}

	if o.validate {
		result.Issues = append(result.Issues, validation.ValidateDocument(node, reduced).Issues...)
	}
	return result, nil
}

func (o *Orchestrator) loadFailure(page, location string, err error) error {
	o.logger.Warn("schema load failed",
		zap.String("page", page),
		zap.String("location", location),
		zap.Error(err),
	)
	var loadErr *schema.LoadError
	if errors.As(err, &loadErr) {
		return fmt.Errorf("orchestrator: page %q: %w", page, err)
	}
	return fmt.Errorf("orchestrator: page %q: %w", page, &schema.LoadError{Location: location, Err: err})
}
