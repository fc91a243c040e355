package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/wsamples/internal/adapters/driven/config/file"
	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Long: `View and change the settings stored in config.toml.

Every key can also be set through an environment variable, for example
WSAMPLES_AUTH_CREDENTIALS_PATH for auth.credentials_path, or through a .env
file in the config directory. Environment values win over config.toml.

Keys:
  auth.credentials_path   path to credentials.json
  auth.token_path         path to the stored user token
  auth.port_start         first callback port tried
  auth.port_end           last callback port tried
  auth.timeout_seconds    how long to wait for the browser sign-in
  auth.open_browser       open the sign-in page automatically
  auth.subject            user a service account impersonates
  output.format           text, json or yaml
  history.enabled         record sample runs
  history.dir             directory of history.db`,
	RunE: runConfigList,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every setting and where it comes from",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Revert a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}
	return newPrinter(cmd).Print(settingsService.List())
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	key := strings.ToLower(args[0])
	for _, s := range settingsService.List() {
		if s.Key == key {
			p := newPrinter(cmd)
			if p.Format() == domain.OutputText {
				return p.Print(s.Value)
			}
			return p.Print(s)
		}
	}
	return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, args[0])
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	key := strings.ToLower(args[0])
	if err := settingsService.Set(key, args[1]); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", key, args[1])
	warnOverridden(cmd, key)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	key := strings.ToLower(args[0])
	if err := settingsService.Unset(key); err != nil {
		return err
	}
	cmd.Printf("%s reset to default\n", key)
	warnOverridden(cmd, key)
	return nil
}

// warnOverridden notes when an environment variable shadows key.
func warnOverridden(cmd *cobra.Command, key string) {
	for _, s := range settingsService.List() {
		if s.Key == key && s.Source == services.SourceEnv {
			cmd.PrintErrf("note: %s overrides this value\n", configfile.EnvVar(key))
		}
	}
}
