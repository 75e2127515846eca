package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFieldType is matched by errors produced when a schema node
	// fits no classification rule.
	ErrUnsupportedFieldType = errors.New("model: unsupported field type")
	// ErrCyclicSchema is returned when a schema node contains itself.
	ErrCyclicSchema = errors.New("model: cyclic schema")
	// ErrKeyCollision is returned when a generated component (a group
	// description or the scaffolding) would reuse a declared property's key.
	ErrKeyCollision = errors.New("model: component key collision")
)

// UnsupportedFieldTypeError reports the node that failed classification.
type UnsupportedFieldTypeError struct {
	Path   string
	Type   string
	Reason string
}

func (e *UnsupportedFieldTypeError) Error() string {
	msg := fmt.Sprintf("model: unsupported field type %q", e.Type)
	if e.Path != "" {
		msg += fmt.Sprintf(" at %q", e.Path)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is lets errors.Is match ErrUnsupportedFieldType.
func (e *UnsupportedFieldTypeError) Is(target error) bool {
	return target == ErrUnsupportedFieldType
}

func collisionError(path string) error {
	return fmt.Errorf("%w at %q", ErrKeyCollision, path)
}

func cycleError(path string) error {
	return fmt.Errorf("%w at %q", ErrCyclicSchema, path)
}
