package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/custodia-labs/wsamples/internal/adapters/driven/config/file"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

func TestRootCmd_InvalidFormat(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "--format", "xml", "list")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRootCmd_FormatPrecedence(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.settings.Set(domain.KeyOutputFormat, "json"))

	out, _, err := execute(t, "list", "sheets")
	require.NoError(t, err)
	var samples []domain.Sample
	require.NoError(t, json.Unmarshal([]byte(out), &samples))
	require.Len(t, samples, 1)
	assert.Equal(t, "sheets.quickstart", samples[0].Name)

	out, _, err = execute(t, "list", "sheets", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "- name: sheets.quickstart\n")
}

func TestRootCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	SetServices(&Services{})

	for _, args := range [][]string{
		{"list"},
		{"run", "drive.quickstart"},
		{"history"},
		{"auth", "status"},
		{"config", "list"},
	} {
		t.Run(args[0], func(t *testing.T) {
			_, _, err := execute(t, args...)

			assert.ErrorIs(t, err, errNotConfigured)
		})
	}
}

func TestBootstrap_WiresServices(t *testing.T) {
	setupTestServices(t)
	injected = false
	for _, key := range domain.ConfigKeys() {
		t.Setenv(configfile.EnvVar(key), "")
		os.Unsetenv(configfile.EnvVar(key))
	}
	dir := t.TempDir()

	out, _, err := execute(t, "--config-dir", dir, "list", "drive")

	require.NoError(t, err)
	assert.Contains(t, out, "drive.quickstart")
	assert.Contains(t, out, "drive.upload-basic")
	assert.NotContains(t, out, "sheets.quickstart")
	assert.FileExists(t, filepath.Join(dir, "history.db"))

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "credentials.json"), settings.Auth.CredentialsPath)
}

func TestApplyFlags(t *testing.T) {
	t.Cleanup(func() { resetFlags(rootCmd) })
	flags := rootCmd.PersistentFlags()
	require.NoError(t, flags.Set("credentials", "/keys/sa.json"))
	require.NoError(t, flags.Set("token", "/tmp/token.json"))
	require.NoError(t, flags.Set("subject", "admin@example.com"))
	require.NoError(t, flags.Set("no-browser", "true"))
	require.NoError(t, flags.Set("format", "yaml"))

	settings := domain.DefaultAppSettings("/cfg")
	applyFlags(rootCmd, &settings)

	assert.Equal(t, "/keys/sa.json", settings.Auth.CredentialsPath)
	assert.Equal(t, "/tmp/token.json", settings.Auth.TokenPath)
	assert.Equal(t, "admin@example.com", settings.Auth.Subject)
	assert.False(t, settings.Auth.OpenBrowser)
	assert.Equal(t, domain.OutputYAML, settings.Output.Format)
}

func TestApplyFlags_Unchanged(t *testing.T) {
	resetFlags(rootCmd)

	settings := domain.DefaultAppSettings("/cfg")
	applyFlags(rootCmd, &settings)

	assert.Equal(t, domain.DefaultAppSettings("/cfg"), settings)
}

func TestSetVersion(t *testing.T) {
	prev := version
	t.Cleanup(func() { version = prev })

	SetVersion("1.2.3")

	assert.Equal(t, "1.2.3", version)
}
