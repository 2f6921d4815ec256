package cli

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lociq/sdlsplit/internal/core/domain"
	"github.com/lociq/sdlsplit/internal/core/ports/driven"
	"github.com/lociq/sdlsplit/internal/core/ports/driving"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [part files...]",
	Short: "Merge split parts back into one document",
	Long: `Merges a set of part files back into a single document.

Modes:
  reconstruct  rebuild the document purely from the parts (default)
  overlay      splice translated targets onto the pristine original
               (requires --original); safest when translators edited
               the parts
  byte-exact   concatenate parts produced by a byte-exact split`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMerge,
}

// Merge command flags.
var (
	mergeMode       string
	mergeOriginal   string
	mergeOut        string
	mergeDuplicates string
)

func init() {
	mergeCmd.Flags().StringVarP(&mergeMode, "mode", "m", "", "Merge mode: reconstruct, overlay or byte-exact")
	mergeCmd.Flags().StringVar(&mergeOriginal, "original", "", "Pristine original document (overlay mode)")
	mergeCmd.Flags().StringVarP(&mergeOut, "out", "o", "", "Output path (default: {stem}_merged{ext})")
	mergeCmd.Flags().StringVar(&mergeDuplicates, "duplicates", "", `Duplicate id policy: "first" or "last"`)
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if mergeService == nil {
		return errors.New("merge service not configured")
	}

	mode, err := domain.ParseMergeMode(resolveFlag(mergeMode, driven.SettingMergeMode, string(domain.MergeReconstruct)))
	if err != nil {
		return err
	}
	dup, err := domain.ParseDuplicatePolicy(resolveFlag(mergeDuplicates, driven.SettingDuplicatePolicy, string(domain.DuplicateLastWins)))
	if err != nil {
		return err
	}

	paths := make([]string, len(args))
	copy(paths, args)
	sortPartPaths(paths)

	req := driving.MergeRequest{
		PartPaths:    paths,
		OriginalPath: mergeOriginal,
		OutputPath:   mergeOut,
		Mode:         mode,
		Duplicates:   dup,
		Progress:     progressPrinter(cmd),
	}

	res, err := mergeService.Merge(context.Background(), req)
	if err != nil {
		return fmt.Errorf("failed to merge: %w", err)
	}

	cmd.Printf("\nMerged %d parts into %s\n", len(paths), res.OutputPath)
	if res.Segments > 0 {
		cmd.Printf("  Segments:     %d\n", res.Segments)
	}
	if len(res.Untranslated) > 0 {
		cmd.Printf("  Untranslated: %d (%s)\n", len(res.Untranslated), joinFew(res.Untranslated, 5))
	}
	if len(res.Untouched) > 0 {
		cmd.Printf("  Untouched:    %d (%s)\n", len(res.Untouched), joinFew(res.Untouched, 5))
	}
	return nil
}

// resolveFlag returns the flag value, the settings default, or the
// built-in default, in that order.
func resolveFlag(flagValue, settingKey, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	return settingString(settingKey, fallback)
}

// partNumberRe extracts the part number from "NofM" or "partN" names.
var partNumberRe = regexp.MustCompile(`\.(?:(\d+)of\d+|part(\d+))\.[^.]+$`)

// sortPartPaths orders part files by the number in their name so shell
// globs merge in part order regardless of lexical quirks.
func sortPartPaths(paths []string) {
	number := func(p string) int {
		m := partNumberRe.FindStringSubmatch(p)
		if m == nil {
			return 0
		}
		for _, g := range m[1:] {
			if g != "" {
				n, _ := strconv.Atoi(g)
				return n
			}
		}
		return 0
	}
	sort.SliceStable(paths, func(i, j int) bool { return number(paths[i]) < number(paths[j]) })
}

// joinFew renders up to limit ids, eliding the rest.
func joinFew(ids []string, limit int) string {
	if len(ids) <= limit {
		return strings.Join(ids, ", ")
	}
	return strings.Join(ids[:limit], ", ") + ", ..."
}
