// Package schema defines the schema node IR the form compiler walks, the
// Source/Document abstractions shared by loaders, and the mapping from page
// identifiers (for example "gov") to schemas/<page>/schema.json locations.
//
// Property declaration order is significant: it drives the order of compiled
// components and the field order used when reducing submitted data back into
// a document, so Node.Properties is a slice rather than a map.
package schema
