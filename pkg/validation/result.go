package validation

// Issue represents a validation error with optional location metadata. Path
// is a JSON pointer into the validated value, Field the matching dotted path.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures validation outcomes.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

func resultOf(issues ...Issue) Result {
	return Result{Valid: len(issues) == 0, Issues: issues}
}
