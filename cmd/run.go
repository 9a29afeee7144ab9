package cmd

import (
	"fmt"

	"github.com/chrisBokotaII/Nettranscongov2/internal/app"
	"github.com/chrisBokotaII/Nettranscongov2/internal/bank"
	"github.com/chrisBokotaII/Nettranscongov2/internal/history"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	questions, err := bank.Load()
	if err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		Bank:     questions,
		Sessions: st.SessionRepo(),
		History:  history.NewAggregator(st.HistoryRepo()),
	}

	return app.Run(opts)
}
