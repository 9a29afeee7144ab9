package cmd

import (
	"fmt"

	"github.com/chrisBokotaII/Nettranscongov2/internal/bank"
	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Validate and summarize the embedded question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := bank.Load()
		if err != nil {
			return fmt.Errorf("question bank is invalid: %w", err)
		}

		fmt.Printf("Question bank OK: %d questions\n", b.Len())

		byCategory, byDifficulty := b.CountBy()

		fmt.Println("\nBy category:")
		for _, c := range bank.Categories {
			fmt.Printf("  %-16s %d\n", c, byCategory[c])
		}

		fmt.Println("\nBy difficulty:")
		for _, d := range bank.Difficulties {
			fmt.Printf("  %-16s %d\n", d, byDifficulty[d])
		}
		return nil
	},
}
