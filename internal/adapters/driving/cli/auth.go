package cli

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

var (
	loginScopes []string
	loginAPIs   []string
	statusCheck bool
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Google sign-in",
	Long: `Sign in with the OAuth client in credentials.json, inspect the stored token,
or revoke it.

Samples sign in on first use, so "auth login" is only needed to grant scopes
up front or to switch accounts. Service account keys need no sign-in.

Examples:
  # Grant the scopes of every Drive and Sheets sample
  wsamples auth login --api drive --api sheets

  # Grant explicit scopes (short names are expanded)
  wsamples auth login --scopes drive.readonly,calendar.readonly

  # Check the token against Google
  wsamples auth status --verify`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store a token",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show credentials and token state",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

var authRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke the stored token and delete it",
	Args:  cobra.NoArgs,
	RunE:  runAuthRevoke,
}

func init() {
	authLoginCmd.Flags().StringSliceVar(&loginScopes, "scopes", nil, "scopes to grant, full URLs or short names")
	authLoginCmd.Flags().StringSliceVar(&loginAPIs, "api", nil, "grant the scopes of every sample of this API")
	authStatusCmd.Flags().BoolVar(&statusCheck, "verify", false, "check the access token with Google")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRevokeCmd)
	rootCmd.AddCommand(authCmd)
}

// loginSummary is printed after a successful login.
type loginSummary struct {
	ClientID string    `json:"client_id"`
	Scopes   []string  `json:"scopes"`
	Expiry   time.Time `json:"expiry"`
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	scopes, err := loginScopeSet()
	if err != nil {
		return err
	}

	tok, err := authService.Login(cmd.Context(), scopes)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	short := make([]string, len(tok.Scopes))
	for i, s := range tok.Scopes {
		short[i] = google.ShortScope(s)
	}
	return newPrinter(cmd).Print(loginSummary{
		ClientID: tok.ClientID,
		Scopes:   short,
		Expiry:   tok.Token.Expiry,
	})
}

// loginScopeSet resolves --scopes and --api into full scope URLs.
// Without either, the scope of drive.quickstart is requested.
func loginScopeSet() ([]string, error) {
	set := make(map[string]bool)
	for _, s := range loginScopes {
		if s = google.ExpandScope(s); s != "" {
			set[s] = true
		}
	}
	for _, api := range loginAPIs {
		if err := requireCatalog(); err != nil {
			return nil, err
		}
		list := catalogService.List(domain.API(api))
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: no samples for api %q", domain.ErrInvalidInput, api)
		}
		for _, sample := range list {
			for _, s := range sample.Scopes {
				set[s] = true
			}
		}
	}
	if len(set) == 0 {
		return []string{google.ScopeDriveMetadataReadonly}, nil
	}

	scopes := make([]string, 0, len(set))
	for s := range set {
		scopes = append(scopes, s)
	}
	sort.Strings(scopes)
	return scopes, nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	status, err := authService.Status(cmd.Context(), statusCheck)
	if err != nil {
		return fmt.Errorf("auth status: %w", err)
	}
	return newPrinter(cmd).Print(status)
}

func runAuthRevoke(cmd *cobra.Command, _ []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	err := authService.Revoke(cmd.Context())
	switch {
	case errors.Is(err, domain.ErrNotFound):
		cmd.Println("No stored token.")
		return nil
	case err != nil:
		return fmt.Errorf("revoke: %w", err)
	}
	cmd.Println("Token revoked and deleted.")
	return nil
}
