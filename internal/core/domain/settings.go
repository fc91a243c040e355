package domain

import (
	"path/filepath"
	"time"
)

// Configuration keys. Keys use dot notation and map to TOML tables.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyCredentialsPath = "auth.credentials_path"
	KeyTokenPath       = "auth.token_path"
	KeyPortStart       = "auth.port_start"
	KeyPortEnd         = "auth.port_end"
	KeyAuthTimeout     = "auth.timeout_seconds"
	KeyOpenBrowser     = "auth.open_browser"
	KeySubject         = "auth.subject"
	KeyOutputFormat    = "output.format"
	KeyHistoryEnabled  = "history.enabled"
	KeyHistoryDir      = "history.dir"
)

// ConfigKeys lists every recognised configuration key in display order.
func ConfigKeys() []string {
	return []string{
		KeyCredentialsPath,
		KeyTokenPath,
		KeyPortStart,
		KeyPortEnd,
		KeyAuthTimeout,
		KeyOpenBrowser,
		KeySubject,
		KeyOutputFormat,
		KeyHistoryEnabled,
		KeyHistoryDir,
	}
}

// IsConfigKey reports whether key is recognised.
func IsConfigKey(key string) bool {
	for _, k := range ConfigKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// OutputFormat selects how sample results are printed.
type OutputFormat string

// Available output formats.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// IsValid returns true if the format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputText, OutputJSON, OutputYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// AuthSettings configures credential discovery and the browser flow.
type AuthSettings struct {
	// CredentialsPath points at credentials.json (OAuth client or service account key).
	CredentialsPath string

	// TokenPath points at token.json.
	TokenPath string

	// PortStart and PortEnd bound the callback port search for redirect
	// URIs without a port.
	PortStart int
	PortEnd   int

	// Timeout bounds the wait for the browser callback.
	Timeout time.Duration

	// OpenBrowser launches the system browser for consent.
	OpenBrowser bool

	// Subject is the user a service account impersonates.
	Subject string
}

// OutputSettings configures result printing.
type OutputSettings struct {
	Format OutputFormat
}

// HistorySettings configures the run history database.
type HistorySettings struct {
	Enabled bool
	Dir     string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Auth    AuthSettings
	Output  OutputSettings
	History HistorySettings
}

// DefaultAppSettings returns settings rooted at configDir.
func DefaultAppSettings(configDir string) AppSettings {
	return AppSettings{
		Auth: AuthSettings{
			CredentialsPath: filepath.Join(configDir, "credentials.json"),
			TokenPath:       filepath.Join(configDir, "token.json"),
			PortStart:       8085,
			PortEnd:         8185,
			Timeout:         5 * time.Minute,
			OpenBrowser:     true,
		},
		Output: OutputSettings{
			Format: OutputText,
		},
		History: HistorySettings{
			Enabled: true,
			Dir:     configDir,
		},
	}
}


// Setting is one configuration key with its effective value.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	// Source is "default", "config" or "env".
	Source string `json:"source"`
}
