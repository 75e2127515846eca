package model

import "github.com/goliatone/go-codejson/pkg/reducer"

// Hints tags the multi-select and boolean-select fields of a compiled tree so
// the reducer can decode their submitted values without probing. Rows of
// repeating groups are submitted as arrays and are not reduced, so their
// children are not tagged.
func Hints(components []Component) reducer.Hints {
	var hints reducer.Hints
	Walk(components, func(c Component) bool {
		switch c.Kind {
		case KindMultiSelect:
			hints.Selections = append(hints.Selections, c.Path)
		case KindBooleanSelect:
			hints.Booleans = append(hints.Booleans, c.Path)
		case KindRepeatingGroup:
			return false
		}
		return true
	})
	return hints
}
