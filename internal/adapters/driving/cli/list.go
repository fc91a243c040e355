package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

var listSearch string

var listCmd = &cobra.Command{
	Use:   "list [api]",
	Short: "List available samples",
	Long: `List the samples in the catalog, optionally limited to one API or to
samples whose name or summary contains --search.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var describeCmd = &cobra.Command{
	Use:   "describe <sample>",
	Short: "Show the scopes and arguments of a sample",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "only show samples matching this text")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(describeCmd)
}

// sampleRow is one line of the list table.
type sampleRow struct {
	Name    string `json:"name"`
	Auth    string `json:"auth"`
	Summary string `json:"summary"`
}

func runList(cmd *cobra.Command, args []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}

	var api domain.API
	if len(args) == 1 {
		api = domain.API(strings.ToLower(args[0]))
		if !knownAPI(api) {
			return fmt.Errorf("%w: unknown api %q", domain.ErrInvalidInput, args[0])
		}
	}

	var list []domain.Sample
	if listSearch != "" {
		for _, s := range catalogService.Search(listSearch) {
			if api == "" || s.API == api {
				list = append(list, s)
			}
		}
	} else {
		list = catalogService.List(api)
	}

	p := newPrinter(cmd)
	if p.Format() != domain.OutputText {
		return p.Print(list)
	}
	rows := make([]sampleRow, len(list))
	for i, s := range list {
		rows[i] = sampleRow{Name: s.Name, Auth: string(s.Auth), Summary: s.Summary}
	}
	return p.Print(rows)
}

func knownAPI(api domain.API) bool {
	for _, a := range catalogService.APIs() {
		if a == api {
			return true
		}
	}
	return false
}

// sampleDetail is the text rendering of one sample.
type sampleDetail struct {
	Name    string           `json:"name"`
	Summary string           `json:"summary"`
	Auth    string           `json:"auth"`
	Scopes  []string         `json:"scopes"`
	Args    []domain.ArgSpec `json:"args,omitempty"`
}

func runDescribe(cmd *cobra.Command, args []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}

	sample, err := catalogService.Describe(args[0])
	if err != nil {
		return err
	}

	p := newPrinter(cmd)
	if p.Format() != domain.OutputText {
		return p.Print(sample)
	}
	scopes := make([]string, len(sample.Scopes))
	for i, s := range sample.Scopes {
		scopes[i] = google.ShortScope(s)
	}
	return p.Print(sampleDetail{
		Name:    sample.Name,
		Summary: sample.Summary,
		Auth:    string(sample.Auth),
		Scopes:  scopes,
		Args:    sample.Args,
	})
}
