package model

import "fmt"

// Decorator patches a compiled component tree in place, for example to apply
// a page preset that rewrites labels or help text.
type Decorator interface {
	Decorate(components []Component) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func([]Component) error

func (fn DecoratorFunc) Decorate(components []Component) error {
	return fn(components)
}

// DecoratorChain runs decorators in registration order and stops at the first
// failure. Nil entries are skipped.
type DecoratorChain []Decorator

func (c DecoratorChain) Decorate(components []Component) error {
	for idx, decorator := range c {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(components); err != nil {
			return fmt.Errorf("decorator %d: %w", idx, err)
		}
	}
	return nil
}
