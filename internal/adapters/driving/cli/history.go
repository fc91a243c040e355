package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

var (
	historyLimit  int
	historySample string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sample runs",
	Long: `Show recent sample runs, newest first. History is kept in history.db in the
config directory unless history.enabled is false.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs")
	historyCmd.Flags().StringVar(&historySample, "sample", "", "only show runs of this sample")
	rootCmd.AddCommand(historyCmd)
}

// historyRow is one line of the history table.
type historyRow struct {
	Started  string `json:"started"`
	Sample   string `json:"sample"`
	Status   string `json:"status"`
	Duration string `json:"duration"`
	Error    string `json:"error"`
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if err := requireRunner(); err != nil {
		return err
	}

	runs, err := runService.History(cmd.Context(), historySample, historyLimit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}
	if runs == nil {
		runs = []domain.RunRecord{}
	}

	p := newPrinter(cmd)
	if p.Format() != domain.OutputText {
		return p.Print(runs)
	}
	rows := make([]historyRow, len(runs))
	for i := range runs {
		rows[i] = historyRow{
			Started:  shortTime(runs[i].StartedAt),
			Sample:   runs[i].Sample,
			Status:   string(runs[i].Status),
			Duration: runs[i].Duration().Round(time.Millisecond).String(),
			Error:    runs[i].Error,
		}
	}
	return p.Print(rows)
}
