// Package tui fills compiled code.json forms in the terminal. A Session walks
// the component tree with survey prompts and returns the flat submission that
// the reducer turns into a document.
package tui
