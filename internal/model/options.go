package model

// Options configures the behaviour of the Compiler. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	Labeler func(string) string

	// AppendCredentialField and AppendSubmitAction control the scaffolding
	// appended after the schema-derived components of a root compilation.
	AppendCredentialField bool
	AppendSubmitAction    bool

	CredentialKey         string
	CredentialLabel       string
	CredentialDescription string

	SubmitKey   string
	SubmitLabel string
}

const (
	defaultCredentialKey         = "gh_api_key"
	defaultCredentialLabel       = "GitHub API Key (optional)"
	defaultCredentialDescription = "Generate a GitHub API key from https://github.com/settings/tokens/new. " +
		"The token needs read and write access to contents, workflows and pull requests."
	defaultSubmitKey   = "submit"
	defaultSubmitLabel = "Generate code.json metadata"
)

// DefaultOptions returns the options used when callers do not override them.
func DefaultOptions() Options {
	return Options{
		Labeler:               FieldNameLabeler,
		AppendCredentialField: true,
		AppendSubmitAction:    true,
		CredentialKey:         defaultCredentialKey,
		CredentialLabel:       defaultCredentialLabel,
		CredentialDescription: defaultCredentialDescription,
		SubmitKey:             defaultSubmitKey,
		SubmitLabel:           defaultSubmitLabel,
	}
}

func (o Options) normalized() Options {
	defaults := DefaultOptions()
	if o.Labeler == nil {
		o.Labeler = defaults.Labeler
	}
	if o.CredentialKey == "" {
		o.CredentialKey = defaults.CredentialKey
	}
	if o.CredentialLabel == "" {
		o.CredentialLabel = defaults.CredentialLabel
	}
	if o.CredentialDescription == "" {
		o.CredentialDescription = defaults.CredentialDescription
	}
	if o.SubmitKey == "" {
		o.SubmitKey = defaults.SubmitKey
	}
	if o.SubmitLabel == "" {
		o.SubmitLabel = defaults.SubmitLabel
	}
	return o
}
