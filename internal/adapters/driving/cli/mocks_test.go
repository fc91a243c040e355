package cli

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/wsamples/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/core/services"
)

// mockAuth is a mock implementation of driving.AuthService.
type mockAuth struct {
	loginScopes []string
	token       *domain.StoredToken
	status      *domain.AuthStatus
	verified    bool
	revokeErr   error
	revoked     bool
	err         error
}

func (m *mockAuth) HTTPClient(context.Context, []string, domain.AuthMode) (*http.Client, error) {
	return http.DefaultClient, m.err
}

func (m *mockAuth) Login(_ context.Context, scopes []string) (*domain.StoredToken, error) {
	m.loginScopes = scopes
	if m.err != nil {
		return nil, m.err
	}
	if m.token != nil {
		return m.token, nil
	}
	return &domain.StoredToken{
		ClientID: "client-1",
		Scopes:   scopes,
		Token:    domain.OAuthToken{AccessToken: "at", Expiry: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}, nil
}

func (m *mockAuth) Status(_ context.Context, verify bool) (*domain.AuthStatus, error) {
	m.verified = verify
	return m.status, m.err
}

func (m *mockAuth) Revoke(context.Context) error {
	m.revoked = true
	return m.revokeErr
}

// mockRunner is a mock implementation of driving.RunService.
type mockRunner struct {
	name    string
	args    domain.Args
	result  any
	err     error
	history []domain.RunRecord
	limit   int
	sample  string
}

func (m *mockRunner) Run(_ context.Context, name string, args domain.Args) (any, error) {
	m.name = name
	m.args = args
	return m.result, m.err
}

func (m *mockRunner) History(_ context.Context, sample string, limit int) ([]domain.RunRecord, error) {
	m.sample = sample
	m.limit = limit
	return m.history, m.err
}

func testRegistry() *catalog.Registry {
	run := func(context.Context, catalog.Env, domain.Args) (any, error) { return nil, nil }
	reg := catalog.NewRegistry()
	reg.MustRegister(
		catalog.Entry{Sample: domain.Sample{
			Name:    "drive.quickstart",
			API:     domain.APIDrive,
			Summary: "List the first ten files",
			Scopes:  []string{"https://www.googleapis.com/auth/drive.metadata.readonly"},
			Auth:    domain.AuthUser,
		}, Run: run},
		catalog.Entry{Sample: domain.Sample{
			Name:    "drive.copy-file",
			API:     domain.APIDrive,
			Summary: "Copy a file",
			Scopes:  []string{"https://www.googleapis.com/auth/drive"},
			Auth:    domain.AuthUser,
			Args: []domain.ArgSpec{
				{Name: "file-id", Required: true, Description: "file to copy"},
				{Name: "name"},
			},
		}, Run: run},
		catalog.Entry{Sample: domain.Sample{
			Name:    "sheets.quickstart",
			API:     domain.APISheets,
			Summary: "Read the class data sheet",
			Scopes:  []string{"https://www.googleapis.com/auth/spreadsheets.readonly"},
			Auth:    domain.AuthUser,
		}, Run: run},
	)
	return reg
}

type testEnv struct {
	auth     *mockAuth
	runner   *mockRunner
	settings *services.SettingsService
}

// setupTestServices injects mocks and returns them. Globals are restored
// when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		auth:     &mockAuth{},
		runner:   &mockRunner{},
		settings: services.NewSettingsService(memory.NewConfigStore(), t.TempDir()),
	}

	prev := Services{
		Settings: settingsService,
		Auth:     authService,
		Catalog:  catalogService,
		Runner:   runService,
		Close:    closeServices,
	}
	prevInjected := injected
	prevTerminal := stdinIsTerminal

	SetServices(&Services{
		Settings: env.settings,
		Auth:     env.auth,
		Catalog:  testRegistry(),
		Runner:   env.runner,
	})
	stdinIsTerminal = func() bool { return false }

	t.Cleanup(func() {
		SetServices(&prev)
		injected = prevInjected
		stdinIsTerminal = prevTerminal
	})
	return env
}

// execute runs rootCmd with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return executeIn(t, "", args...)
}

// executeIn runs rootCmd reading stdin from input. Flag values left over
// from earlier executions are reset first.
func executeIn(t *testing.T, input string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
