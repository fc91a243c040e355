package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/core/ports/driven"
	"github.com/custodia-labs/wsamples/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Setting sources reported by List.
const (
	SourceDefault = "default"
	SourceConfig  = "config"
	SourceEnv     = "env"
)

// overrider is implemented by config stores that layer environment
// variables over the file.
type overrider interface {
	Overridden(key string) bool
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	configDir   string
}

// NewSettingsService creates a new settings service. Relative defaults
// such as credentials.json are resolved against configDir.
func NewSettingsService(configStore driven.ConfigStore, configDir string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		configDir:   configDir,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := s.GetDefaults()

	settings := &domain.AppSettings{
		Auth: domain.AuthSettings{
			CredentialsPath: s.getString(domain.KeyCredentialsPath, defaults.Auth.CredentialsPath),
			TokenPath:       s.getString(domain.KeyTokenPath, defaults.Auth.TokenPath),
			PortStart:       s.getInt(domain.KeyPortStart, defaults.Auth.PortStart),
			PortEnd:         s.getInt(domain.KeyPortEnd, defaults.Auth.PortEnd),
			Timeout:         time.Duration(s.getInt(domain.KeyAuthTimeout, 0)) * time.Second,
			OpenBrowser:     s.getBool(domain.KeyOpenBrowser, defaults.Auth.OpenBrowser),
			Subject:         s.configStore.GetString(domain.KeySubject),
		},
		Output: domain.OutputSettings{
			Format: s.getFormat(defaults.Output.Format),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(domain.KeyHistoryEnabled, defaults.History.Enabled),
			Dir:     s.getString(domain.KeyHistoryDir, defaults.History.Dir),
		},
	}
	if settings.Auth.Timeout <= 0 {
		settings.Auth.Timeout = defaults.Auth.Timeout
	}
	if settings.Auth.PortEnd < settings.Auth.PortStart {
		return nil, fmt.Errorf("%w: %s (%d) is below %s (%d)", domain.ErrInvalidInput,
			domain.KeyPortEnd, settings.Auth.PortEnd, domain.KeyPortStart, settings.Auth.PortStart)
	}
	return settings, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings(s.configDir)
}

// Set validates value for key and persists it with its natural type.
func (s *SettingsService) Set(key, value string) error {
	if !domain.IsConfigKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var typed any = value
	switch key {
	case domain.KeyPortStart, domain.KeyPortEnd:
		port, err := strconv.Atoi(value)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("%w: %s must be a port number, got %q", domain.ErrInvalidInput, key, value)
		}
		typed = port
	case domain.KeyAuthTimeout:
		secs, err := strconv.Atoi(value)
		if err != nil || secs <= 0 {
			return fmt.Errorf("%w: %s must be a positive number of seconds, got %q", domain.ErrInvalidInput, key, value)
		}
		typed = secs
	case domain.KeyOpenBrowser, domain.KeyHistoryEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		typed = b
	case domain.KeyOutputFormat:
		if !domain.OutputFormat(value).IsValid() {
			return fmt.Errorf("%w: output format must be text, json or yaml, got %q", domain.ErrInvalidInput, value)
		}
	}
	return s.configStore.Set(key, typed)
}

// Unset reverts key to its default.
func (s *SettingsService) Unset(key string) error {
	if !domain.IsConfigKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Unset(key)
}

// List returns every known key with its effective value and where it came from.
func (s *SettingsService) List() []domain.Setting {
	defaults := s.defaultValues()
	keys := domain.ConfigKeys()
	out := make([]domain.Setting, 0, len(keys))
	for _, key := range keys {
		setting := domain.Setting{Key: key, Value: defaults[key], Source: SourceDefault}
		if val, ok := s.configStore.Get(key); ok {
			setting.Value = fmt.Sprint(val)
			setting.Source = SourceConfig
			if o, ok := s.configStore.(overrider); ok && o.Overridden(key) {
				setting.Source = SourceEnv
			}
		}
		out = append(out, setting)
	}
	return out
}

func (s *SettingsService) defaultValues() map[string]string {
	d := s.GetDefaults()
	return map[string]string{
		domain.KeyCredentialsPath: d.Auth.CredentialsPath,
		domain.KeyTokenPath:       d.Auth.TokenPath,
		domain.KeyPortStart:       strconv.Itoa(d.Auth.PortStart),
		domain.KeyPortEnd:         strconv.Itoa(d.Auth.PortEnd),
		domain.KeyAuthTimeout:     strconv.Itoa(int(d.Auth.Timeout / time.Second)),
		domain.KeyOpenBrowser:     strconv.FormatBool(d.Auth.OpenBrowser),
		domain.KeySubject:         d.Auth.Subject,
		domain.KeyOutputFormat:    d.Output.Format.String(),
		domain.KeyHistoryEnabled:  strconv.FormatBool(d.History.Enabled),
		domain.KeyHistoryDir:      d.History.Dir,
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := strings.TrimSpace(s.configStore.GetString(key))
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFormat(defaultVal domain.OutputFormat) domain.OutputFormat {
	format := domain.OutputFormat(s.configStore.GetString(domain.KeyOutputFormat))
	if !format.IsValid() {
		return defaultVal
	}
	return format
}
