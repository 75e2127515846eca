package model

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-codejson/pkg/document"
	"github.com/goliatone/go-codejson/pkg/schema"
)

const (
	optionalSuffix = " (optional)"
	datePattern    = "yyyy-MM-dd"
)

// BuildComponent materialises the descriptor for one schema property. nested
// reports whether the property lives inside a container or repeating group;
// nested labels never carry the optional suffix. Children of container and
// repeating-group components are left empty for the compiler to fill.
func (c *Compiler) BuildComponent(name string, node *schema.Node, required map[string]struct{}, nested bool) (Component, error) {
	return c.build(name, name, node, required, nested)
}

func (c *Compiler) build(name, path string, node *schema.Node, required map[string]struct{}, nested bool) (Component, error) {
	kind, err := classifyAt(node, path)
	if err != nil {
		return Component{}, err
	}

	_, isRequired := required[name]
	if kind == KindStaticContent {
		isRequired = false
	}

	label := c.options.Labeler(name)
	if !isRequired && !nested {
		label += optionalSuffix
	}

	component := Component{
		Key:         name,
		Path:        path,
		Kind:        kind,
		Label:       label,
		Description: node.Description,
		Required:    isRequired,
		Input:       kind.IsInput(),
	}
	if kind != KindStaticContent {
		component.Validate = &Validation{Required: isRequired}
	}

	switch kind {
	case KindDate:
		component.Date = &DateFormat{Pattern: datePattern}
	case KindDecimal:
		component.Number = &NumberFormat{}
	case KindInteger:
		zero := 0
		component.Number = &NumberFormat{DecimalLimit: &zero}
	case KindSingleSelect:
		component.Options = enumOptions(node.Enum)
	case KindMultiSelect:
		component.Options = enumOptions(node.Items.Enum)
		component.InputType = "checkbox"
	case KindBooleanSelect:
		component.Options = []Option{
			{Label: "True", Value: "true"},
			{Label: "False", Value: "false"},
		}
	case KindContainer:
		component.Children = []Component{}
	case KindRepeatingGroup:
		component.Children = []Component{}
		component.DefaultValue = []any{document.NewObject()}
	case KindStaticContent:
		component.Description = ""
		component.HTML = fmt.Sprintf(staticContentWrapper, sanitizeContent(node.Content))
		component.CustomClass = node.ClassName
	}

	return component, nil
}

// enumOptions keeps enum order; label and value are both the literal rendered
// as a string.
func enumOptions(values []any) []Option {
	options := make([]Option, 0, len(values))
	for _, value := range values {
		text := stringifyLiteral(value)
		options = append(options, Option{Label: text, Value: text})
	}
	return options
}

func stringifyLiteral(value any) string {
	switch typed := value.(type) {
	case nil:
		return "null"
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case document.Number:
		return typed.String()
	default:
		raw, err := document.Encode(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(raw)
	}
}
