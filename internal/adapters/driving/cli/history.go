package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded split and merge operations",
	RunE:  runHistory,
}

// historyLimit caps the number of listed operations.
var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximum operations to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	ops, err := historyService.List(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if len(ops) == 0 {
		cmd.Println("No recorded operations.")
		return nil
	}

	for _, op := range ops {
		cmd.Printf("%s  %-5s  %s\n", op.CreatedAt.Format("2006-01-02 15:04:05"), op.Kind, op.Input)
		cmd.Printf("    %d parts, %d segments", op.Parts, op.Segments)
		if op.Words > 0 {
			cmd.Printf(", %d words", op.Words)
		}
		if op.SplitID != "" {
			cmd.Printf("  [%s]", op.SplitID)
		}
		cmd.Println()
	}
	return nil
}
