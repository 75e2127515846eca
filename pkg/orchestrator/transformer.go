package orchestrator

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/goliatone/go-codejson/pkg/model"
)

// JSONPresetDecorator applies declarative patches loaded from a JSON file to
// compiled components, addressed by their dotted path:
//
//	{
//	  "components": {
//	    "name": {"label": "Project name", "description": "Shown in the catalog"},
//	    "permissions.licenses": {"label": "Licenses"}
//	  }
//	}
type JSONPresetDecorator struct {
	document jsonPresetDocument
}

type jsonPresetDocument struct {
	Components map[string]jsonComponentPatch `json:"components"`
}

type jsonComponentPatch struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	CustomClass string `json:"customClass"`
}

var _ model.Decorator = (*JSONPresetDecorator)(nil)

// NewJSONPresetDecorator constructs a decorator from raw JSON bytes.
func NewJSONPresetDecorator(data []byte) (*JSONPresetDecorator, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset decorator: document is empty")
	}
	var document jsonPresetDocument
	if err := gojson.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset decorator: parse document: %w", err)
	}
	return &JSONPresetDecorator{document: document}, nil
}

// NewJSONPresetDecoratorFromFS loads a preset document from the provided
// filesystem path.
func NewJSONPresetDecoratorFromFS(fsys fs.FS, path string) (*JSONPresetDecorator, error) {
	if fsys == nil {
		return nil, errors.New("json preset decorator: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset decorator: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset decorator: read %s: %w", path, err)
	}
	return NewJSONPresetDecorator(data)
}

// Decorate applies the patches. Unknown paths are an error so stale presets
// surface when the schema changes.
func (d *JSONPresetDecorator) Decorate(components []model.Component) error {
	for path, patch := range d.document.Components {
		component := findComponentByPath(components, path)
		if component == nil {
			return fmt.Errorf("json preset decorator: component %q not found", path)
		}
		applyComponentPatch(component, patch)
	}
	return nil
}

func applyComponentPatch(component *model.Component, patch jsonComponentPatch) {
	if patch.Label != "" {
		component.Label = patch.Label
	}
	if patch.Description != "" {
		component.Description = patch.Description
	}
	if patch.CustomClass != "" {
		component.CustomClass = patch.CustomClass
	}
}

func findComponentByPath(components []model.Component, path string) *model.Component {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	for idx := range components {
		component := &components[idx]
		if component.Path == path {
			return component
		}
		if strings.HasPrefix(path, component.Path+".") {
			if found := findComponentByPath(component.Children, path); found != nil {
				return found
			}
		}
	}
	return nil
}
