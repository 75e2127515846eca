package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"syscall"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-codejson/internal/server"
	"github.com/goliatone/go-codejson/pkg/document"
	"github.com/goliatone/go-codejson/pkg/orchestrator"
	"github.com/goliatone/go-codejson/pkg/renderers/tui"
	"github.com/goliatone/go-codejson/pkg/validation"
)

var (
	errDocumentInvalid = errors.New("document does not match the schema")
	errLintFailed      = errors.New("schema lint failed")
)

// newPromptDriver builds the terminal driver used by fill.
var newPromptDriver = func(out io.Writer) tui.PromptDriver {
	return tui.NewSurveyDriver(out)
}

func newCompileCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Print the compiled form components of a page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			components, err := opts.orch.Compile(cmd.Context(), opts.pageName())
			if err != nil {
				return err
			}
			return writeIndentedJSON(cmd.OutOrStdout(), components)
		},
	}
}

func newReduceCmd(opts *rootOptions) *cobra.Command {
	var dataPath string
	cmd := &cobra.Command{
		Use:   "reduce",
		Short: "Reduce a flat form submission into a code.json document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readObject(cmd.InOrStdin(), dataPath)
			if err != nil {
				return err
			}
			result, err := opts.orch.Reduce(cmd.Context(), opts.pageName(), data)
			if err != nil {
				return err
			}
			printIssues(cmd.ErrOrStderr(), "warning", result.Issues)
			raw, err := document.EncodeIndent(result.Document)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "-", "submission JSON file (- for stdin)")
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var docPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a code.json document against a page schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := readObject(cmd.InOrStdin(), docPath)
			if err != nil {
				return err
			}
			node, err := opts.orch.Schema(cmd.Context(), opts.pageName())
			if err != nil {
				return err
			}
			result := validation.ValidateDocument(node, doc)
			if result.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}
			printIssues(cmd.OutOrStdout(), "invalid", result.Issues)
			return errDocumentInvalid
		},
	}
	cmd.Flags().StringVar(&docPath, "document", "code.json", "document to validate (- for stdin)")
	return cmd
}

type violation struct {
	file     string
	location string
	message  string
}

func newLintCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <schema>...",
		Short: "Check that schema files compile into a form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, paths []string) error {
			var violations []violation
			for _, path := range paths {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				for _, issue := range validation.ValidateSchema(raw).Issues {
					location := issue.Field
					if location == "" {
						location = issue.Path
					}
					if location == "" {
						location = "(root)"
					}
					violations = append(violations, violation{file: path, location: location, message: issue.Message})
				}
			}
			if len(violations) == 0 {
				return nil
			}

			sort.Slice(violations, func(i, j int) bool {
				if violations[i].file == violations[j].file {
					if violations[i].location == violations[j].location {
						return violations[i].message < violations[j].message
					}
					return violations[i].location < violations[j].location
				}
				return violations[i].file < violations[j].file
			})
			for _, v := range violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s -> %s\n", v.file, v.location, v.message)
			}
			return errLintFailed
		},
	}
}

func newFillCmd(opts *rootOptions) *cobra.Command {
	var (
		output     string
		valuesPath string
	)
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in a page form in the terminal and write code.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			page := opts.pageName()

			components, err := opts.orch.Compile(ctx, page)
			if err != nil {
				return err
			}

			sessionOpts := []tui.Option{
				tui.WithPromptDriver(newPromptDriver(cmd.ErrOrStderr())),
				tui.WithTheme(tui.Theme{ErrorPrefix: "! "}),
			}
			if valuesPath != "" {
				values, err := readObject(cmd.InOrStdin(), valuesPath)
				if err != nil {
					return err
				}
				sessionOpts = append(sessionOpts, tui.WithValues(values))
			}

			heading := orchestrator.PageHeading(page)
			fmt.Fprintf(cmd.ErrOrStderr(), "%s\n%s\n\n", heading.Title, heading.Description)

			submission, err := tui.New(sessionOpts...).Run(ctx, components)
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "aborted, nothing written")
				return err
			}
			if err != nil {
				return err
			}
			result, err := opts.orch.Reduce(ctx, page, submission)
			if err != nil {
				return err
			}
			printIssues(cmd.ErrOrStderr(), "warning", result.Issues)

			raw, err := document.EncodeIndent(result.Document)
			if err != nil {
				return err
			}
			if output == "-" {
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}
			if err := os.WriteFile(output, raw, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "code.json written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "code.json", "output file (- for stdout)")
	cmd.Flags().StringVar(&valuesPath, "values", "", "prefill answers from a previous submission JSON file")
	return cmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve compiled forms and reduction over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = opts.cfg.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(opts.orch, server.WithLogger(opts.logger)).Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "codejson version: %s\n", Version)
			fmt.Fprintf(out, "Git commit: %s\n", GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		},
	}
}

func readObject(stdin io.Reader, path string) (*document.Object, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	obj, err := document.DecodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return obj, nil
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printIssues(w io.Writer, prefix string, issues []validation.Issue) {
	for _, issue := range issues {
		field := issue.Field
		if field == "" {
			field = "(document)"
		}
		fmt.Fprintf(w, "%s: %s: %s\n", prefix, field, strings.TrimSpace(issue.Message))
	}
}
