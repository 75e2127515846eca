// Package model defines the component descriptors compiled from code.json
// schemas. Compilation lives in internal/model; this package re-exports the
// descriptor types and exposes the compiler constructor. A compiled tree is
// an ordered slice of Component values: containers and repeating groups own
// their Children, and a root compilation ends with a credential input and a
// submit action unless disabled through options.
package model
