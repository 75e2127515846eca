package model

import (
	"github.com/goliatone/go-codejson/pkg/schema"
)

const (
	descriptionSuffix    = "-description"
	descriptionClassName = ".margin-bottom-neg-205"
)

// Compiler turns object schemas into ordered component trees. A Compiler holds
// no mutable state and is safe for concurrent use.
type Compiler struct {
	options Options
}

// New constructs a Compiler. Zero-valued string options fall back to the
// defaults; the scaffolding toggles are taken as given.
func New(options Options) *Compiler {
	return &Compiler{options: options.normalized()}
}

// Options returns the compiler configuration.
func (c *Compiler) Options() Options {
	return c.options
}

// Compile produces the component tree for a root schema, followed by the
// configured scaffolding. A schema that is not an object, or that declares no
// properties, yields no schema-derived components.
func (c *Compiler) Compile(root *schema.Node) ([]Component, error) {
	components, err := c.compileObject(root, "", make(map[*schema.Node]struct{}))
	if err != nil {
		return nil, err
	}
	if c.options.AppendCredentialField {
		components = append(components, c.credentialComponent())
	}
	if c.options.AppendSubmitAction {
		components = append(components, c.submitComponent())
	}
	seen := make(map[string]struct{}, len(components))
	for _, component := range components {
		if _, dup := seen[component.Key]; dup {
			return nil, collisionError(component.Key)
		}
		seen[component.Key] = struct{}{}
	}
	return components, nil
}

// CompileFields compiles the properties of node without scaffolding. It is
// used for nested objects and for callers embedding the fields in a larger
// form.
func (c *Compiler) CompileFields(node *schema.Node) ([]Component, error) {
	return c.compileObject(node, "", make(map[*schema.Node]struct{}))
}

func (c *Compiler) compileObject(node *schema.Node, prefix string, visiting map[*schema.Node]struct{}) ([]Component, error) {
	components := []Component{}
	if node == nil || !node.TypeIs(schema.TypeObject) || node.Properties == nil {
		return components, nil
	}

	if _, seen := visiting[node]; seen {
		return nil, cycleError(prefix)
	}
	visiting[node] = struct{}{}
	defer delete(visiting, node)

	required := node.RequiredSet()
	nested := prefix != ""

	for _, prop := range node.Properties {
		path := joinKey(prefix, prop.Name)
		component, err := c.build(prop.Name, path, prop.Schema, required, nested)
		if err != nil {
			return nil, err
		}

		switch component.Kind {
		case KindContainer:
			children, err := c.compileObject(prop.Schema, path, visiting)
			if err != nil {
				return nil, err
			}
			component.Children = children
		case KindRepeatingGroup:
			children, err := c.compileObject(prop.Schema.Items, path, visiting)
			if err != nil {
				return nil, err
			}
			component.Children = children
		}

		components = append(components, component)

		if component.Kind == KindRepeatingGroup {
			if _, declared := node.Property(prop.Name + descriptionSuffix); declared {
				return nil, collisionError(path + descriptionSuffix)
			}
			description, err := c.groupDescription(prop.Name, path, prop.Schema.Description)
			if err != nil {
				return nil, err
			}
			components = append(components, description)
		}
	}

	return components, nil
}

// groupDescription renders a repeating group's description as static content
// placed directly below the group.
func (c *Compiler) groupDescription(name, path, text string) (Component, error) {
	node := &schema.Node{
		Types:     []string{schema.TypeContent},
		Content:   text,
		ClassName: descriptionClassName,
	}
	component, err := c.build(name+descriptionSuffix, path+descriptionSuffix, node, nil, false)
	if err != nil {
		return Component{}, err
	}
	component.Synthetic = true
	return component, nil
}

func (c *Compiler) credentialComponent() Component {
	return Component{
		Key:         c.options.CredentialKey,
		Path:        c.options.CredentialKey,
		Kind:        KindSecret,
		Label:       c.options.CredentialLabel,
		Description: c.options.CredentialDescription,
		Input:       true,
		InputType:   "password",
		Validate:    &Validation{},
	}
}

func (c *Compiler) submitComponent() Component {
	return Component{
		Key:   c.options.SubmitKey,
		Path:  c.options.SubmitKey,
		Kind:  KindSubmit,
		Label: c.options.SubmitLabel,
	}
}

func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
