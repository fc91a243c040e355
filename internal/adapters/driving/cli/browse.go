package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui"
)

// browseOptions are extra bubbletea options, replaced in tests.
var browseOptions []tea.ProgramOption

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Pick a sample interactively and run it",
	Long: `Browse the catalog in a terminal UI, fill in the sample's arguments and run it.

Controls:
  ↑/k, ↓/j  - Navigate
  /         - Filter samples
  Enter     - Select / Run
  Tab       - Next argument
  Esc       - Back
  q         - Quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) (err error) {
	if err := requireRunner(); err != nil {
		return err
	}

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("browse: %v", r)
		}
	}()

	sel, err := tui.Browse(cmd.Context(), tui.NewPorts(catalogService), browseOptions...)
	if errors.Is(err, tui.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	cmd.PrintErrf("Running %s\n", sel.Sample.Name)
	return runSample(cmd, sel.Sample.Name, sel.Args)
}
