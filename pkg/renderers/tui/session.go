package tui

import (
	"context"
	"errors"
	"fmt"
	"html"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-codejson/pkg/document"
	"github.com/goliatone/go-codejson/pkg/model"
)

const (
	unsetOption = "(unset)"
	dateLayout  = "2006-01-02"
)

// Session walks a compiled component tree in the terminal and captures the
// flat submission the reducer consumes: containers become nested objects,
// repeating groups arrays of row objects, multi-selects option -> bool maps
// and boolean-selects the strings "true" / "false".
type Session struct {
	driver  PromptDriver
	prefill *State
	theme   Theme
	text    *bluemonday.Policy
}

// New constructs a Session with defaults (survey driver on stdout).
func New(options ...Option) *Session {
	s := &Session{
		driver:  NewSurveyDriver(nil),
		prefill: NewState(nil),
		text:    bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Run prompts for every component in order and returns the captured
// submission. Prompting stops at the submit action.
func (s *Session) Run(ctx context.Context, components []model.Component) (*document.Object, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return nil, ErrNoComponents
	}

	out := document.NewObject()
	if _, err := s.promptAll(ctx, components, out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// promptAll fills out from components. It reports whether the submit action
// was reached.
func (s *Session) promptAll(ctx context.Context, components []model.Component, out *document.Object, prefilled bool) (bool, error) {
	for _, component := range components {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if component.Kind == model.KindSubmit {
			out.Set(component.Key, true)
			return true, nil
		}
		value, keep, err := s.promptComponent(ctx, component, prefilled)
		if err != nil {
			return false, err
		}
		if keep {
			out.Set(component.Key, value)
		}
	}
	return false, nil
}

func (s *Session) promptComponent(ctx context.Context, c model.Component, prefilled bool) (any, bool, error) {
	switch c.Kind {
	case model.KindStaticContent:
		if text := s.plainText(c.HTML); text != "" {
			return nil, false, s.info(ctx, text)
		}
		return nil, false, nil
	case model.KindText:
		value, err := s.promptText(ctx, c, s.defaultString(c, prefilled), nil)
		return value, true, err
	case model.KindDate:
		value, err := s.promptText(ctx, c, s.defaultString(c, prefilled), validateDate)
		return value, true, err
	case model.KindDecimal, model.KindInteger:
		return s.promptNumber(ctx, c, s.defaultString(c, prefilled))
	case model.KindSingleSelect:
		value, err := s.promptSelect(ctx, c, s.defaultString(c, prefilled))
		return value, true, err
	case model.KindBooleanSelect:
		value, err := s.promptSelect(ctx, c, s.defaultString(c, prefilled))
		return value, true, err
	case model.KindMultiSelect:
		value, err := s.promptMultiSelect(ctx, c, prefilled)
		return value, true, err
	case model.KindFreeTextList:
		value, err := s.promptList(ctx, c, s.defaultString(c, prefilled))
		return value, true, err
	case model.KindContainer:
		if err := s.heading(ctx, c); err != nil {
			return nil, false, err
		}
		nested := document.NewObject()
		if _, err := s.promptAll(ctx, c.Children, nested, prefilled); err != nil {
			return nil, false, err
		}
		return nested, true, nil
	case model.KindRepeatingGroup:
		value, err := s.promptRows(ctx, c)
		return value, true, err
	case model.KindSecret:
		value, err := s.driver.Password(ctx, InputConfig{Message: c.Label, Help: c.Description})
		if err != nil {
			return nil, false, err
		}
		return strings.TrimSpace(value), true, nil
	default:
		return nil, false, fmt.Errorf("tui: unsupported component kind %q at %s", c.Kind, c.Path)
	}
}

func (s *Session) promptText(ctx context.Context, c model.Component, def string, validate func(string) error) (string, error) {
	for {
		response, err := s.driver.Input(ctx, InputConfig{
			Message: c.Label,
			Default: def,
			Help:    c.Description,
		})
		if err != nil {
			return "", err
		}
		response = strings.TrimSpace(response)

		if response == "" {
			if c.Required {
				if err := s.invalid(ctx, c, errRequired); err != nil {
					return "", err
				}
				continue
			}
			return "", nil
		}
		if validate != nil {
			if err := validate(response); err != nil {
				if err := s.invalid(ctx, c, err); err != nil {
					return "", err
				}
				continue
			}
		}
		return response, nil
	}
}

func (s *Session) promptNumber(ctx context.Context, c model.Component, def string) (any, bool, error) {
	integer := c.Kind == model.KindInteger
	response, err := s.promptText(ctx, c, def, func(raw string) error {
		if integer {
			_, err := strconv.ParseInt(raw, 10, 64)
			return err
		}
		_, err := strconv.ParseFloat(raw, 64)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	if response == "" {
		return nil, false, nil
	}
	return document.Number(response), true, nil
}

// promptSelect serves single-selects and boolean-selects. Optional fields get
// an extra unset choice so "no answer" stays distinct from any option.
func (s *Session) promptSelect(ctx context.Context, c model.Component, current string) (string, error) {
	labels := make([]string, 0, len(c.Options)+1)
	for _, option := range c.Options {
		labels = append(labels, option.Label)
	}
	offset := 0
	if !c.Required {
		labels = append([]string{unsetOption}, labels...)
		offset = 1
	}

	defaultIdx := -1
	for i, option := range c.Options {
		if option.Value == current {
			defaultIdx = i + offset
		}
	}

	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      c.Label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         c.Description,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(labels) {
			if err := s.invalid(ctx, c, errOutOfRange); err != nil {
				return "", err
			}
			continue
		}
		if idx < offset {
			return "", nil
		}
		return c.Options[idx-offset].Value, nil
	}
}

func (s *Session) promptMultiSelect(ctx context.Context, c model.Component, prefilled bool) (*document.Object, error) {
	labels := make([]string, 0, len(c.Options))
	values := make([]string, 0, len(c.Options))
	for _, option := range c.Options {
		labels = append(labels, option.Label)
		values = append(values, option.Value)
	}
	var defaults []int
	if prefilled {
		defaults = selectedIndices(values, s.prefill.Selected(c.Path))
	}

	for {
		indices, err := s.driver.MultiSelect(ctx, SelectConfig{
			Message:  c.Label,
			Options:  labels,
			Defaults: defaults,
			Help:     c.Description,
		})
		if err != nil {
			return nil, err
		}
		if c.Required && len(indices) == 0 {
			if err := s.invalid(ctx, c, errEmptySelection); err != nil {
				return nil, err
			}
			continue
		}

		chosen := make(map[int]bool, len(indices))
		for _, idx := range indices {
			chosen[idx] = true
		}
		selection := document.NewObject()
		for i, value := range values {
			selection.Set(value, chosen[i])
		}
		return selection, nil
	}
}

func (s *Session) promptList(ctx context.Context, c model.Component, def string) ([]any, error) {
	prompt := c
	prompt.Label = c.Label + " (comma separated)"
	response, err := s.promptText(ctx, prompt, def, nil)
	if err != nil {
		return nil, err
	}
	items := []any{}
	for _, part := range strings.Split(response, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items, nil
}

// promptRows collects repeating-group rows. Declining the first row submits
// the group's default value, a single empty row.
func (s *Session) promptRows(ctx context.Context, c model.Component) ([]any, error) {
	var rows []any
	for {
		message := fmt.Sprintf("Add an entry to %s?", c.Label)
		if len(rows) > 0 {
			message = fmt.Sprintf("Add another entry to %s?", c.Label)
		}
		more, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: len(rows) == 0 && c.Required,
			Help:    c.Description,
		})
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		row := document.NewObject()
		if _, err := s.promptAll(ctx, c.Children, row, false); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		if def, ok := document.Clone(c.DefaultValue).([]any); ok {
			return def, nil
		}
		return []any{}, nil
	}
	return rows, nil
}

func (s *Session) defaultString(c model.Component, prefilled bool) string {
	if !prefilled {
		return ""
	}
	return s.prefill.String(c.Path)
}

func (s *Session) heading(ctx context.Context, c model.Component) error {
	text := c.Label
	if c.Description != "" {
		text += ": " + c.Description
	}
	return s.info(ctx, text)
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Session) invalid(ctx context.Context, c model.Component, err error) error {
	return s.driver.Info(ctx, fmt.Sprintf("%sInvalid %s: %v", s.theme.ErrorPrefix, c.Path, err))
}

func (s *Session) plainText(markup string) string {
	return strings.TrimSpace(html.UnescapeString(s.text.Sanitize(markup)))
}

func validateDate(raw string) error {
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return errors.New("expected a date formatted as YYYY-MM-DD")
	}
	return nil
}

// selectedIndices maps prefilled option values back to their positions.
func selectedIndices(values, selected []string) []int {
	var out []int
	for i, value := range values {
		if slices.Contains(selected, value) {
			out = append(out, i)
		}
	}
	return out
}
