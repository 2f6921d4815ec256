package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show document statistics and split metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectService == nil {
		return errors.New("inspect service not configured")
	}

	info, err := inspectService.Inspect(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to inspect: %w", err)
	}

	cmd.Printf("Document: %s\n\n", info.Path)
	cmd.Printf("  Encoding:    %s\n", info.Encoding)
	cmd.Printf("  Segments:    %d\n", info.Segments)
	cmd.Printf("  Words:       %d\n", info.Words)
	cmd.Printf("  Translated:  %d of %d\n", info.Translated, info.Segments)
	cmd.Printf("  Groups:      %d\n", info.Groups)

	if d := info.Descriptor; d != nil {
		cmd.Println("\n  Split part:")
		cmd.Printf("    Split ID:   %s\n", d.SplitID)
		cmd.Printf("    Part:       %d of %d\n", d.PartNumber, d.TotalParts)
		cmd.Printf("    Original:   %s\n", d.OriginalName)
		cmd.Printf("    Segments:   %d-%d of %d\n", d.FirstSegment+1, d.LastSegment+1, d.TotalSegments)
		cmd.Printf("    Words:      %d of %d\n", d.PartWords, d.TotalWords)
		cmd.Printf("    Created:    %s\n", d.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
