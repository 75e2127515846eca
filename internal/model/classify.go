package model

import (
	"github.com/goliatone/go-codejson/pkg/schema"
)

// Classify maps a schema node onto a component kind. Rules are evaluated in
// order and the first match wins; a node that matches none of them yields an
// *UnsupportedFieldTypeError.
func Classify(node *schema.Node) (Kind, error) {
	return classifyAt(node, "")
}

func classifyAt(node *schema.Node, path string) (Kind, error) {
	if node == nil {
		return "", &UnsupportedFieldTypeError{Path: path, Type: "<none>", Reason: "schema node is missing"}
	}

	switch {
	case node.TypeIs(schema.TypeObject):
		return KindContainer, nil
	case node.TypeIs(schema.TypeArray):
		if node.Items == nil {
			return "", &UnsupportedFieldTypeError{Path: path, Type: node.TypeLabel(), Reason: "array without items"}
		}
		switch {
		case node.Items.TypeIs(schema.TypeObject):
			return KindRepeatingGroup, nil
		case node.Items.HasEnum():
			return KindMultiSelect, nil
		default:
			return KindFreeTextList, nil
		}
	case node.HasEnum():
		return KindSingleSelect, nil
	case node.TypeIs(schema.TypeNumber):
		return KindDecimal, nil
	case node.TypeIs(schema.TypeInteger):
		return KindInteger, nil
	case node.TypeIs(schema.TypeBoolean):
		return KindBooleanSelect, nil
	case node.TypeIs(schema.TypeContent):
		return KindStaticContent, nil
	case node.TypeIncludes(schema.TypeString):
		if node.Format == "date-time" {
			return KindDate, nil
		}
		return KindText, nil
	}

	return "", &UnsupportedFieldTypeError{Path: path, Type: node.TypeLabel()}
}
