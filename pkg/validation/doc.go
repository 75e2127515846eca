// Package validation reports problems with schemas and with the documents
// reduced from form submissions. Results are plain data so they can be
// returned to HTTP clients and printed by the CLI as-is.
package validation
