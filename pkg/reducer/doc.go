// Package reducer rebuilds a nested code.json document from a flat form
// submission. Fields are emitted in the supplied order, vacuous values are
// pruned and selection maps collapse into arrays of selected option names.
package reducer
