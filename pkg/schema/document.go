package schema

import (
	"bytes"
	"errors"
)

// Format names the serialisation of a schema payload.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is a raw page schema as fetched, before parsing. It remembers the
// page it was requested for so load failures can name it.
type Document struct {
	source Source
	page   string
	raw    []byte
}

// NewDocument copies raw into a Document. Blank payloads are rejected: an
// empty schema file means the page is not ready.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, errors.New("schema: document is empty")
	}
	return Document{source: src, raw: bytes.Clone(raw)}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// WithPage returns a copy of the document tagged with a page identifier.
func (d Document) WithPage(page string) Document {
	d.page = page
	return d
}

func (d Document) Page() string { return d.page }

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return bytes.Clone(d.raw)
}

// Format guesses the payload serialisation: JSON documents open with an
// object or array, anything else is treated as YAML.
func (d Document) Format() Format {
	trimmed := bytes.TrimSpace(d.raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
