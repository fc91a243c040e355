// Package cli implements the wsamples command line on top of spf13/cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/wsamples/internal/adapters/driven/config/file"
	revoker "github.com/custodia-labs/wsamples/internal/adapters/driven/oauth"
	"github.com/custodia-labs/wsamples/internal/adapters/driven/storage/sqlite"
	tokenfile "github.com/custodia-labs/wsamples/internal/adapters/driven/tokenstore/file"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/oauth"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/output"
	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/core/ports/driving"
	"github.com/custodia-labs/wsamples/internal/core/services"
	"github.com/custodia-labs/wsamples/internal/logger"
	"github.com/custodia-labs/wsamples/internal/samples"
)

// version is set at build time via ldflags.
var version = "dev"

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

// Services holds the core services the commands use.
type Services struct {
	Settings driving.SettingsService
	Auth     driving.AuthService
	Catalog  driving.CatalogService
	Runner   driving.RunService

	// Close releases resources such as the history database. Optional.
	Close func() error
}

var (
	settingsService driving.SettingsService
	authService     driving.AuthService
	catalogService  driving.CatalogService
	runService      driving.RunService
	closeServices   func() error

	// injected is set by SetServices and disables bootstrap.
	injected bool
)

// Persistent flags.
var (
	configDir       string
	credentialsPath string
	tokenPath       string
	formatFlag      string
	subjectFlag     string
	verbose         bool
	noBrowser       bool
)

var rootCmd = &cobra.Command{
	Use:   "wsamples",
	Short: "Run Google Workspace API samples",
	Long: `wsamples runs small, self-contained samples against the Google Workspace APIs:
Drive, Sheets, Slides, Docs, Forms, Chat, Calendar, Gmail, People, Classroom,
Tasks, Apps Script, Meet and the Admin SDK.

Put an OAuth client (or service account key) downloaded from the Google Cloud
console at ~/.wsamples/credentials.json, then:

  wsamples list                 # show the catalog
  wsamples run drive.quickstart # sign in on first use and run a sample
  wsamples browse               # pick a sample interactively`,
	SilenceUsage:       true,
	PersistentPreRunE:  bootstrap,
	PersistentPostRunE: shutdown,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.wsamples)")
	pf.StringVar(&credentialsPath, "credentials", "", "path to credentials.json")
	pf.StringVar(&tokenPath, "token", "", "path to the stored user token")
	pf.StringVarP(&formatFlag, "format", "o", string(domain.OutputText), "output format: text, json or yaml")
	pf.StringVar(&subjectFlag, "subject", "", "user a service account impersonates")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&noBrowser, "no-browser", false, "print the sign-in URL instead of opening a browser")
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by "wsamples version".
func SetVersion(v string) {
	version = v
}

// SetServices injects services and skips the default wiring.
func SetServices(s *Services) {
	settingsService = s.Settings
	authService = s.Auth
	catalogService = s.Catalog
	runService = s.Runner
	closeServices = s.Close
	injected = true
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if cmd.Flags().Changed("format") && !domain.OutputFormat(formatFlag).IsValid() {
		return fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidInput, formatFlag)
	}
	if injected || cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}

	dir := configDir
	if dir == "" {
		var err error
		if dir, err = configfile.DefaultDir(); err != nil {
			return fmt.Errorf("locating config directory: %w", err)
		}
	}

	store, err := configfile.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	settingsSvc := services.NewSettingsService(store, dir)
	settings, err := settingsSvc.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	applyFlags(cmd, settings)
	logger.Debug("credentials: %s, token: %s", settings.Auth.CredentialsPath, settings.Auth.TokenPath)

	opts := []oauth.Option{
		oauth.WithTimeout(settings.Auth.Timeout),
		oauth.WithPortRange(settings.Auth.PortStart, settings.Auth.PortEnd),
		oauth.WithOutput(cmd.ErrOrStderr()),
	}
	if !settings.Auth.OpenBrowser {
		opts = append(opts, oauth.WithoutBrowser())
	}

	auth := services.NewAuthenticator(services.AuthenticatorConfig{
		CredentialsPath: settings.Auth.CredentialsPath,
		Subject:         settings.Auth.Subject,
		Tokens:          tokenfile.NewTokenStore(settings.Auth.TokenPath),
		Authorizer:      oauth.NewReceiver(opts...),
		Revoker:         revoker.NewRevoker(revoker.GoogleRevokeURL, nil),
	})

	registry := samples.NewRegistry()
	runnerOpts := []services.RunnerOption{}
	if wd, err := os.Getwd(); err == nil {
		runnerOpts = append(runnerOpts, services.WithWorkDir(wd))
	}
	closeServices = nil
	if settings.History.Enabled {
		db, err := sqlite.NewStore(settings.History.Dir)
		if err != nil {
			logger.Warn("run history disabled: %v", err)
		} else {
			runnerOpts = append(runnerOpts, services.WithHistory(db.HistoryStore()))
			closeServices = db.Close
		}
	}

	settingsService = settingsSvc
	authService = auth
	catalogService = registry
	runService = services.NewRunner(registry, auth, runnerOpts...)
	return nil
}

// applyFlags lets persistent flags override stored settings.
func applyFlags(cmd *cobra.Command, s *domain.AppSettings) {
	flags := cmd.Flags()
	if flags.Changed("credentials") {
		s.Auth.CredentialsPath = credentialsPath
	}
	if flags.Changed("token") {
		s.Auth.TokenPath = tokenPath
	}
	if flags.Changed("subject") {
		s.Auth.Subject = subjectFlag
	}
	if flags.Changed("no-browser") {
		s.Auth.OpenBrowser = !noBrowser
	}
	if flags.Changed("format") {
		s.Output.Format = domain.OutputFormat(formatFlag)
	}
}

func shutdown(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	return closeServices()
}

// newPrinter returns a printer for the effective output format:
// the --format flag, then the output.format setting, then text.
func newPrinter(cmd *cobra.Command) *output.Printer {
	format := domain.OutputText
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			format = s.Output.Format
		}
	}
	if cmd.Flags().Changed("format") {
		format = domain.OutputFormat(formatFlag)
	}
	return output.New(cmd.OutOrStdout(), format)
}

var errNotConfigured = errors.New("services not configured")

func requireCatalog() error {
	if catalogService == nil {
		return fmt.Errorf("catalog: %w", errNotConfigured)
	}
	return nil
}

func requireRunner() error {
	if runService == nil || catalogService == nil {
		return fmt.Errorf("runner: %w", errNotConfigured)
	}
	return nil
}

func requireAuth() error {
	if authService == nil {
		return fmt.Errorf("auth: %w", errNotConfigured)
	}
	return nil
}

func requireSettings() error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}
	return nil
}

// shortTime formats t for tables.
func shortTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
