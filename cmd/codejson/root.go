package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-codejson/internal/config"
	internalloader "github.com/goliatone/go-codejson/internal/loader"
	"github.com/goliatone/go-codejson/internal/logging"
	"github.com/goliatone/go-codejson/pkg/model"
	"github.com/goliatone/go-codejson/pkg/orchestrator"
	"github.com/goliatone/go-codejson/pkg/schema"
)

// rootOptions holds the global flags and the state resolved from them before
// a subcommand runs.
type rootOptions struct {
	configPath string
	page       string
	logLevel   string
	schemaPath string

	cfg    *config.Config
	logger *zap.Logger
	orch   *orchestrator.Orchestrator
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "codejson",
		Short: "Compile code.json forms and reduce submissions",
		Long: `codejson compiles a page's JSON Schema into form component descriptors and
reduces flat form submissions back into code.json documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ./codejson.yaml when present)")
	flags.StringVar(&opts.page, "page", "", "page identifier (default schemas.default_page)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&opts.schemaPath, "schema", "", "schema file path or URL, bypassing page lookup")

	rootCmd.AddCommand(
		newCompileCmd(opts),
		newReduceCmd(opts),
		newValidateCmd(opts),
		newLintCmd(opts),
		newFillCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

func (o *rootOptions) setup() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	level := cfg.Log.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	logger, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(cfg, logger, o.schemaPath)
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logger
	o.orch = orch
	return nil
}

// pageName resolves the page to operate on.
func (o *rootOptions) pageName() string {
	if page := strings.TrimSpace(o.page); page != "" {
		return page
	}
	return o.cfg.Schemas.DefaultPage
}

func newOrchestrator(cfg *config.Config, logger *zap.Logger, schemaPath string) (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithSchemaOrder(cfg.Reduce.SchemaOrder),
		orchestrator.WithValidation(cfg.Reduce.Validate),
	}

	var compile []model.CompilerOption
	if !cfg.Form.CredentialField {
		compile = append(compile, model.WithoutCredentialField())
	}
	if !cfg.Form.SubmitAction {
		compile = append(compile, model.WithoutSubmitAction())
	}
	options = append(options, orchestrator.WithCompileOptions(compile...))

	if preset := strings.TrimSpace(cfg.Form.Preset); preset != "" {
		decorator, err := orchestrator.NewJSONPresetDecoratorFromFS(os.DirFS(filepath.Dir(preset)), filepath.Base(preset))
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithDecorators(decorator))
	}

	remote := schema.NewLoaderOptions(schema.WithHTTPFallback(cfg.Schemas.Timeout))
	switch {
	case strings.TrimSpace(schemaPath) != "":
		src, err := parseSource(schemaPath)
		if err != nil {
			return nil, err
		}
		options = append(options,
			orchestrator.WithLoader(internalloader.New(remote)),
			orchestrator.WithLocator(fixedLocator{source: src}),
		)
	case cfg.Schemas.Dir != "":
		options = append(options,
			orchestrator.WithLoader(internalloader.New(schema.NewLoaderOptions())),
			orchestrator.WithLocator(schema.DirLocator{Root: cfg.Schemas.Dir}),
		)
	case cfg.Schemas.BaseURL != "":
		options = append(options,
			orchestrator.WithLoader(internalloader.New(remote)),
			orchestrator.WithLocator(schema.URLLocator{BaseURL: cfg.Schemas.BaseURL}),
		)
	}
	return orchestrator.New(options...), nil
}

// fixedLocator serves one schema source for every valid page.
type fixedLocator struct {
	source schema.Source
}

func (l fixedLocator) Locate(page string) (schema.Source, error) {
	if err := schema.ValidatePage(page); err != nil {
		return nil, err
	}
	return l.source, nil
}

func parseSource(raw string) (schema.Source, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil, errors.New("schema source is empty")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		if _, err := url.ParseRequestURI(path); err != nil {
			return nil, fmt.Errorf("invalid schema URL %q: %w", path, err)
		}
		return schema.SourceFromURL(path), nil
	}
	return schema.SourceFromFile(path), nil
}
