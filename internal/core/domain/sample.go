package domain

import (
	"fmt"
	"strings"
)

// API identifies the Google Workspace API a sample exercises.
type API string

// Supported APIs.
const (
	APIDrive     API = "drive"
	APISheets    API = "sheets"
	APISlides    API = "slides"
	APIChat      API = "chat"
	APIForms     API = "forms"
	APIAdmin     API = "admin"
	APICalendar  API = "calendar"
	APIGmail     API = "gmail"
	APIPeople    API = "people"
	APIClassroom API = "classroom"
	APITasks     API = "tasks"
	APIDocs      API = "docs"
	APIScript    API = "script"
	APIMeet      API = "meet"
)

// AuthMode describes which credentials a sample can run with.
type AuthMode string

const (
	// AuthUser requires a user OAuth token.
	AuthUser AuthMode = "user"
	// AuthServiceAccount requires service account credentials.
	AuthServiceAccount AuthMode = "service_account"
	// AuthAny accepts either.
	AuthAny AuthMode = "any"
)

// Accepts reports whether the mode allows credentials of the given kind.
func (m AuthMode) Accepts(kind CredentialsKind) bool {
	switch m {
	case AuthUser:
		return kind == CredentialsInstalled || kind == CredentialsWeb
	case AuthServiceAccount:
		return kind == CredentialsServiceAccount
	default:
		return true
	}
}

// ArgSpec describes one named sample argument.
type ArgSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     string `json:"default,omitempty"`
}

// Sample describes a catalog entry.
type Sample struct {
	// Name is "<api>.<snippet>", e.g. "drive.upload-basic".
	Name    string    `json:"name"`
	API     API       `json:"api"`
	Summary string    `json:"summary"`
	Scopes  []string  `json:"scopes"`
	Args    []ArgSpec `json:"args,omitempty"`
	Auth    AuthMode  `json:"auth"`
}

// Args is the set of argument values supplied for a run.
type Args map[string]string

// ParseArgs converts "key=value" pairs into Args.
func ParseArgs(pairs []string) (Args, error) {
	args := make(Args, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: argument %q is not key=value", ErrInvalidInput, pair)
		}
		args[key] = value
	}
	return args, nil
}

// Resolve validates args against the sample's specs and fills in defaults.
// Unknown keys are rejected.
func (s *Sample) Resolve(args Args) (Args, error) {
	resolved := make(Args, len(s.Args))
	known := make(map[string]bool, len(s.Args))
	for _, spec := range s.Args {
		known[spec.Name] = true
		if v, ok := args[spec.Name]; ok && v != "" {
			resolved[spec.Name] = v
			continue
		}
		if spec.Required {
			return nil, fmt.Errorf("%w: %s", ErrMissingArgument, spec.Name)
		}
		if spec.Default != "" {
			resolved[spec.Name] = spec.Default
		}
	}
	for k := range args {
		if !known[k] {
			return nil, fmt.Errorf("%w: unknown argument %q for %s", ErrInvalidInput, k, s.Name)
		}
	}
	return resolved, nil
}

// Get returns the named argument value.
func (a Args) Get(name string) string {
	return a[name]
}

// List splits a comma-separated argument into trimmed, non-empty parts.
func (a Args) List(name string) []string {
	raw := a[name]
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
