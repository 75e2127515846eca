package model

import internalmodel "github.com/goliatone/go-codejson/internal/model"

// Kind re-exports the internal component kind enumeration.
type Kind = internalmodel.Kind

const (
	KindText           = internalmodel.KindText
	KindDate           = internalmodel.KindDate
	KindDecimal        = internalmodel.KindDecimal
	KindInteger        = internalmodel.KindInteger
	KindSingleSelect   = internalmodel.KindSingleSelect
	KindMultiSelect    = internalmodel.KindMultiSelect
	KindFreeTextList   = internalmodel.KindFreeTextList
	KindBooleanSelect  = internalmodel.KindBooleanSelect
	KindContainer      = internalmodel.KindContainer
	KindRepeatingGroup = internalmodel.KindRepeatingGroup
	KindStaticContent  = internalmodel.KindStaticContent
	KindSecret         = internalmodel.KindSecret
	KindSubmit         = internalmodel.KindSubmit
)

type Component = internalmodel.Component
type Option = internalmodel.Option
type Validation = internalmodel.Validation
type NumberFormat = internalmodel.NumberFormat
type DateFormat = internalmodel.DateFormat
type UnsupportedFieldTypeError = internalmodel.UnsupportedFieldTypeError

var (
	ErrUnsupportedFieldType = internalmodel.ErrUnsupportedFieldType
	ErrCyclicSchema         = internalmodel.ErrCyclicSchema
	ErrKeyCollision         = internalmodel.ErrKeyCollision
)

// Walk visits components depth first. Returning false skips children.
func Walk(components []Component, fn func(Component) bool) {
	internalmodel.Walk(components, fn)
}
