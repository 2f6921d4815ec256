package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lociq/sdlsplit/internal/core/ports/driven"
	"github.com/lociq/sdlsplit/internal/core/ports/driving"
)

var splitCmd = &cobra.Command{
	Use:   "split [file]",
	Short: "Split a document into parts",
	Long: `Splits an SDLXLIFF document into N independently valid parts, either
by segment count (--parts) or by a word target per part (--words).
Group elements are never split across parts unless --preserve-groups
is disabled. With --byte-exact the document is cut at top-level group
boundaries into verbatim slices that merge back byte-identically.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

// Split command flags.
var (
	splitParts            int
	splitWords            int
	splitOutDir           string
	splitByteExact        bool
	splitPreserveGroups   bool
	splitDuplicateContext bool
	splitNaming           string
)

func init() {
	splitCmd.Flags().IntVarP(&splitParts, "parts", "n", 0, "Number of parts")
	splitCmd.Flags().IntVarP(&splitWords, "words", "w", 0, "Target word count per part")
	splitCmd.Flags().StringVarP(&splitOutDir, "out-dir", "o", "", "Output directory (default: input directory)")
	splitCmd.Flags().BoolVar(&splitByteExact, "byte-exact", false, "Cut at top-level group boundaries with no metadata")
	splitCmd.Flags().BoolVar(&splitPreserveGroups, "preserve-groups", true, "Never split a group across parts")
	splitCmd.Flags().BoolVar(&splitDuplicateContext, "duplicate-context", true, "Re-embed context blocks into every part")
	splitCmd.Flags().StringVar(&splitNaming, "naming", "", `Part naming pattern: "NofM" or "partN"`)
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	if splitService == nil {
		return errors.New("split service not configured")
	}

	req := driving.SplitRequest{
		InputPath:    args[0],
		OutputDir:    splitOutDir,
		PartsCount:   splitParts,
		WordsPerPart: splitWords,
		ByteExact:    splitByteExact,
		Progress:     progressPrinter(cmd),
	}

	// Flags override settings; settings override built-in defaults.
	req.PreserveGroups = splitPreserveGroups
	if !cmd.Flags().Changed("preserve-groups") {
		req.PreserveGroups = settingBool(driven.SettingPreserveGroups, true)
	}
	req.DuplicateContext = splitDuplicateContext
	if !cmd.Flags().Changed("duplicate-context") {
		req.DuplicateContext = settingBool(driven.SettingDuplicateContext, true)
	}
	req.PartNaming = splitNaming
	if req.PartNaming == "" {
		req.PartNaming = settingString(driven.SettingPartNaming, "NofM")
	}

	res, err := splitService.Split(context.Background(), req)
	if err != nil {
		return fmt.Errorf("failed to split: %w", err)
	}

	cmd.Printf("\nSplit %s into %d parts", args[0], len(res.Parts))
	if res.SplitID != "" {
		cmd.Printf(" (split id %s)", res.SplitID)
	}
	cmd.Printf("\n\n")
	for i, part := range res.Parts {
		cmd.Printf("  %d. %s", i+1, part.Path)
		if part.Words > 0 {
			cmd.Printf("  (%d segments, %d words)", part.Segments, part.Words)
		} else if part.Segments > 0 {
			cmd.Printf("  (%d segments)", part.Segments)
		}
		cmd.Println()
	}
	cmd.Printf("\nTotal: %d segments, %d words\n", res.TotalSegments, res.TotalWords)
	return nil
}
