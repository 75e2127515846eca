package codejson

import (
	internalloader "github.com/goliatone/go-codejson/internal/loader"
	"github.com/goliatone/go-codejson/pkg/schema"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	cfg := schema.NewLoaderOptions(options...)
	return internalloader.New(cfg)
}

// ParseSchema parses a JSON or YAML schema payload.
func ParseSchema(raw []byte) (*schema.Node, error) {
	return schema.Parse(raw)
}
