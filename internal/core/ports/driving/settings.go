package driving

import "github.com/custodia-labs/wsamples/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Set validates and stores a single key.
	Set(key, value string) error

	// Unset reverts a key to its default.
	Unset(key string) error

	// List returns every known key with its effective value.
	List() []domain.Setting

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
