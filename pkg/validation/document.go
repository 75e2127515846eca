package validation

import (
	"errors"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-codejson/pkg/document"
	"github.com/goliatone/go-codejson/pkg/schema"
)

// ValidateDocument checks a reduced document against the page schema. Every
// violation is reported, including required fields the reducer omitted
// because their submitted value was empty. String formats are not enforced:
// date inputs submit calendar dates for fields declared as date-time.
func ValidateDocument(node *schema.Node, doc *document.Object) Result {
	if node == nil {
		return resultOf(Issue{Message: "schema is required"})
	}
	if doc == nil {
		doc = document.NewObject()
	}

	err := ToOpenAPI(node).VisitJSON(document.Plain(doc), openapi3.MultiErrors())
	if err == nil {
		return Result{Valid: true}
	}
	return resultOf(issuesFromError(err)...)
}

// ToOpenAPI converts a schema node into the kin-openapi representation used
// for validation. The content pseudo-type carries no constraints.
func ToOpenAPI(node *schema.Node) *openapi3.Schema {
	out := openapi3.NewSchema()
	if node == nil {
		return out
	}

	var types openapi3.Types
	for _, t := range node.Types {
		switch t {
		case schema.TypeContent:
		case schema.TypeNull:
			out.Nullable = true
		default:
			types = append(types, t)
		}
	}
	if len(types) > 0 {
		out.Type = &types
	}

	out.Title = node.Title
	out.Description = node.Description
	if node.Enum != nil {
		out.Enum = make([]any, 0, len(node.Enum))
		for _, value := range node.Enum {
			out.Enum = append(out.Enum, document.Plain(value))
		}
	}
	if len(node.Required) > 0 {
		out.Required = append([]string(nil), node.Required...)
	}
	if len(node.Properties) > 0 {
		out.Properties = make(openapi3.Schemas, len(node.Properties))
		for _, prop := range node.Properties {
			out.Properties[prop.Name] = openapi3.NewSchemaRef("", ToOpenAPI(prop.Schema))
		}
	}
	if node.Items != nil {
		out.Items = openapi3.NewSchemaRef("", ToOpenAPI(node.Items))
	}
	return out
}

func issuesFromError(err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []Issue
		for _, item := range multi {
			out = append(out, issuesFromError(item)...)
		}
		return out
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		segments := schemaErr.JSONPointer()
		issue := Issue{Message: strings.TrimSpace(schemaErr.Reason)}
		if issue.Message == "" {
			issue.Message = strings.TrimSpace(schemaErr.Error())
		}
		if len(segments) > 0 {
			issue.Path = "/" + strings.Join(escapeSegments(segments), "/")
			issue.Field = strings.Join(segments, ".")
		}
		return []Issue{issue}
	}

	return []Issue{{Message: strings.TrimSpace(err.Error())}}
}

func escapeSegments(segments []string) []string {
	out := make([]string, len(segments))
	for i, segment := range segments {
		segment = strings.ReplaceAll(segment, "~", "~0")
		out[i] = strings.ReplaceAll(segment, "/", "~1")
	}
	return out
}
