package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/parley/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		repo := st.EventRepo()
		stats, err := repo.SectionStats(ctx)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatStats(stats))

		exportPath, _ := cmd.Flags().GetString("export")
		if exportPath == "" {
			return nil
		}
		events, err := repo.QueryPracticeEvents(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		if err := exportHistory(exportPath, stats, events); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nExported %d results to %s\n", len(events), exportPath)
		return nil
	},
}

func init() {
	statsCmd.Flags().String("export", "", "Write the full history to an .xlsx spreadsheet")
}

func formatStats(stats []store.SectionStats) string {
	if len(stats) == 0 {
		return "No practice recorded yet.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %8s %8s %6s  %s\n", "SECTION", "ATTEMPTS", "AVERAGE", "BEST", "LAST PRACTICED")
	for _, s := range stats {
		fmt.Fprintf(&b, "%-12s %8d %7.1f%% %5d%%  %s\n",
			s.Section, s.Attempts, s.AvgPercent, s.BestPercent,
			s.LastPracticed.Local().Format("2006-01-02 15:04"))
	}
	return b.String()
}
