package validation

import (
	"errors"
	"strings"

	"github.com/goliatone/go-codejson/internal/model"
	"github.com/goliatone/go-codejson/pkg/schema"
)

// ValidateSchema checks that raw parses as a page schema and that every
// property compiles to a component. Only the first problem is reported since
// parsing stops there.
func ValidateSchema(raw []byte) Result {
	node, err := schema.Parse(raw)
	if err != nil {
		return resultOf(schemaIssue(err))
	}
	if !node.TypeIs(schema.TypeObject) || len(node.Properties) == 0 {
		return resultOf(Issue{Message: "schema must be an object with properties"})
	}
	if _, err := model.New(model.Options{}).CompileFields(node); err != nil {
		return resultOf(schemaIssue(err))
	}
	return Result{Valid: true}
}

func schemaIssue(err error) Issue {
	var syntax *schema.SyntaxError
	if errors.As(err, &syntax) {
		return Issue{
			Path:    syntax.Pointer,
			Field:   fieldPathFromPointer(syntax.Pointer),
			Message: syntax.Reason,
		}
	}
	var unsupported *model.UnsupportedFieldTypeError
	if errors.As(err, &unsupported) {
		return Issue{Field: unsupported.Path, Message: strings.TrimPrefix(err.Error(), "model: ")}
	}
	return Issue{Message: strings.TrimPrefix(err.Error(), "schema: ")}
}

// fieldPathFromPointer maps a schema pointer such as
// "#/properties/date/properties/created" to the submission path
// "date.created". "items" segments name no field and are skipped.
func fieldPathFromPointer(pointer string) string {
	pointer = strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	var fields []string
	expectName := false
	for _, segment := range strings.Split(pointer, "/") {
		segment = strings.NewReplacer("~1", "/", "~0", "~").Replace(segment)
		switch {
		case expectName:
			fields = append(fields, segment)
			expectName = false
		case segment == "properties":
			expectName = true
		case segment == "" || segment == "items":
		default:
			fields = append(fields, segment)
		}
	}
	return strings.Join(fields, ".")
}
