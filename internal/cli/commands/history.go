package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"stp/internal/config"
	"stp/internal/domain"
	"stp/internal/storage"
	"stp/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config *config.Config
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config) *HistoryCommand {
	return &HistoryCommand{config: cfg}
}

// Execute lists recent runs, or the results of the run named by args[0]
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	if !hc.config.HistoryEnabled() {
		return fmt.Errorf("run history is disabled (set history_dsn or %s)", config.EnvHistoryDSN)
	}

	history, err := storage.OpenSQL(hc.config.HistoryDriver, hc.config.HistoryDSN)
	if err != nil {
		return err
	}
	defer history.Close()

	formatter := ui.NewFormatter(hc.config, cmd.OutOrStdout())

	if len(args) == 1 {
		results, err := history.Results(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fmt.Errorf("run %s not found", args[0])
		}
		formatter.PrintResults(results)
		formatter.PrintSummary(domain.Summarize(results))
		return nil
	}

	records, err := history.Recent(cmd.Context(), hc.config.Flags.HistoryRuns)
	if err != nil {
		return err
	}
	formatter.PrintHistory(records)
	return nil
}
