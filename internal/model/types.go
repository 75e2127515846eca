package model

// Kind tags the variant of a compiled component.
type Kind string

const (
	KindText           Kind = "text"
	KindDate           Kind = "date"
	KindDecimal        Kind = "decimal"
	KindInteger        Kind = "integer"
	KindSingleSelect   Kind = "single-select"
	KindMultiSelect    Kind = "multi-select"
	KindFreeTextList   Kind = "free-text-list"
	KindBooleanSelect  Kind = "boolean-select"
	KindContainer      Kind = "container"
	KindRepeatingGroup Kind = "repeating-group"
	KindStaticContent  Kind = "static-content"

	// KindSecret and KindSubmit are never produced by classification; they
	// describe the scaffolding appended to a root compilation.
	KindSecret Kind = "secret"
	KindSubmit Kind = "submit"
)

// IsInput reports whether components of this kind capture a value.
func (k Kind) IsInput() bool {
	switch k {
	case KindStaticContent, KindSubmit:
		return false
	default:
		return true
	}
}

// HasChildren reports whether components of this kind own child components.
func (k Kind) HasChildren() bool {
	return k == KindContainer || k == KindRepeatingGroup
}

// Option is one choice of a select-style component.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Validation carries the constraints the rendering layer enforces.
type Validation struct {
	Required bool `json:"required"`
}

// NumberFormat configures numeric inputs.
type NumberFormat struct {
	RequireDecimal bool `json:"requireDecimal"`
	Delimiter      bool `json:"delimiter"`
	// DecimalLimit caps fractional digits; nil means unlimited.
	DecimalLimit *int `json:"decimalLimit,omitempty"`
}

// DateFormat configures date inputs.
type DateFormat struct {
	Pattern    string `json:"pattern"`
	EnableTime bool   `json:"enableTime"`
}

// Component describes one compiled form field. Container and repeating-group
// components own their Children exclusively.
type Component struct {
	// Key is the local field name, matching the key used in submitted data.
	Key string `json:"key"`
	// Path is the dotted path from the root, unique within a compilation.
	Path         string        `json:"path"`
	Kind         Kind          `json:"kind"`
	Label        string        `json:"label"`
	Description  string        `json:"description,omitempty"`
	Required     bool          `json:"required"`
	Input        bool          `json:"input"`
	InputType    string        `json:"inputType,omitempty"`
	Validate     *Validation   `json:"validate,omitempty"`
	Options      []Option      `json:"options,omitempty"`
	Number       *NumberFormat `json:"number,omitempty"`
	Date         *DateFormat   `json:"date,omitempty"`
	DefaultValue any           `json:"defaultValue,omitempty"`
	HTML         string        `json:"html,omitempty"`
	CustomClass  string        `json:"customClass,omitempty"`
	// Synthetic marks components the compiler adds that have no schema
	// property of their own, such as repeating-group descriptions.
	Synthetic bool        `json:"synthetic,omitempty"`
	Children  []Component `json:"children,omitempty"`
}

// Walk visits components depth first in order. Returning false from fn skips
// the component's children.
func Walk(components []Component, fn func(c Component) bool) {
	for _, component := range components {
		if fn(component) && len(component.Children) > 0 {
			Walk(component.Children, fn)
		}
	}
}
