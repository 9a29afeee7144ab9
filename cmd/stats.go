package cmd

import (
	"fmt"
	"time"

	"github.com/chrisBokotaII/Nettranscongov2/internal/history"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		agg := history.NewAggregator(st.HistoryRepo())
		if agg.Len() == 0 {
			fmt.Println("No results recorded yet.")
			return nil
		}

		fmt.Printf("Attempts: %d\n", agg.Len())
		fmt.Printf("Average:  %d%%\n", agg.AverageScorePercent())
		fmt.Printf("Best:     %d%%\n", agg.BestScorePercent())

		if stats := agg.ByCategory(); len(stats) > 0 {
			fmt.Println("\nBy category:")
			for _, cs := range stats {
				fmt.Printf("  %-16s %3d%%  (%d attempts)\n", cs.Name, cs.AveragePercent, cs.Count)
			}
		}

		fmt.Println("\nRecent:")
		records := agg.Records()
		if len(records) > 10 {
			records = records[:10]
		}
		for _, r := range records {
			when := time.UnixMilli(r.Timestamp).Format("2006-01-02 15:04")
			fmt.Printf("  %s  %-5s  %-9s  %d/%d (%d%%)\n",
				when, r.Mode, r.Difficulty, r.Score, r.Total, r.Percent())
		}
		return nil
	},
}
