// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The Authenticator turns credentials.json into authorized clients,
// the Runner executes catalog samples and the SettingsService reads
// and validates configuration.
package services
