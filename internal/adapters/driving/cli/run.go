package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// stdinIsTerminal reports whether missing arguments can be prompted for.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var runCmd = &cobra.Command{
	Use:   "run <sample> [key=value ...]",
	Short: "Run a sample",
	Long: `Run a sample from the catalog. Arguments are given as key=value pairs;
"wsamples describe <sample>" lists them. Missing required arguments are
prompted for when stdin is a terminal.

The first run of a user sample opens a browser for Google sign-in.

Examples:
  wsamples run drive.quickstart
  wsamples run drive.upload-basic path=report.pdf
  wsamples run sheets.get-values spreadsheet-id=1BxiM... range=A1:C10 -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	values, err := domain.ParseArgs(args[1:])
	if err != nil {
		return err
	}
	return runSample(cmd, args[0], values)
}

// runSample prompts for missing arguments, runs the sample and prints its result.
func runSample(cmd *cobra.Command, name string, values domain.Args) error {
	if err := requireRunner(); err != nil {
		return err
	}

	sample, err := catalogService.Describe(name)
	if err != nil {
		return err
	}
	if values == nil {
		values = domain.Args{}
	}
	if stdinIsTerminal() {
		if err := promptMissing(cmd, sample, values); err != nil {
			return err
		}
	}

	result, err := runService.Run(cmd.Context(), name, values)
	if err != nil {
		if hint := google.Hint(err); hint != "" {
			cmd.PrintErrln("hint: " + hint)
		}
		return err
	}
	return newPrinter(cmd).Print(result)
}

// promptMissing asks for required arguments absent from values.
func promptMissing(cmd *cobra.Command, sample *domain.Sample, values domain.Args) error {
	var reader *bufio.Reader
	for _, spec := range sample.Args {
		if !spec.Required || values[spec.Name] != "" {
			continue
		}
		if reader == nil {
			reader = bufio.NewReader(cmd.InOrStdin())
		}
		label := spec.Name
		if spec.Description != "" {
			label = fmt.Sprintf("%s (%s)", spec.Name, spec.Description)
		}
		cmd.PrintErrf("%s: ", label)
		line, err := readLine(reader)
		if err != nil {
			return fmt.Errorf("reading %s: %w", spec.Name, err)
		}
		if line == "" {
			return fmt.Errorf("%w: %s", domain.ErrMissingArgument, spec.Name)
		}
		values[spec.Name] = line
	}
	return nil
}

func readLine(reader *bufio.Reader) (string, error) {
	input, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
