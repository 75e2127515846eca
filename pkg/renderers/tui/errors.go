package tui

import "errors"

// ErrAborted is returned when the user interrupts a session. Nothing is
// submitted in that case.
var ErrAborted = errors.New("tui: aborted")

// ErrNoComponents means the session was given an empty form, which is how a
// page that failed to load presents.
var ErrNoComponents = errors.New("tui: no components to prompt")

// Answer problems. They are reported through the theme's error prefix and the
// question is asked again.
var (
	errRequired       = errors.New("required")
	errOutOfRange     = errors.New("selection out of range")
	errEmptySelection = errors.New("select at least one option")
)
