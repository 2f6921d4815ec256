// Package cli implements the sdlsplit command line interface on top
// of the driving ports. Commands are thin: flag handling, settings
// fallbacks and output formatting; all behaviour lives in the engine.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/lociq/sdlsplit/internal/core/ports/driven"
	"github.com/lociq/sdlsplit/internal/core/ports/driving"
	"github.com/lociq/sdlsplit/internal/logger"
)

// version is injected by Execute.
var version = "dev"

// verboseFlag enables debug output on stderr.
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "sdlsplit",
	Short: "Split and merge SDLXLIFF translation files",
	Long: `sdlsplit partitions a bilingual SDLXLIFF document into independently
valid parts so several translators can work in parallel, and merges the
parts back into a single document afterwards.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

// Package-level service handles, set by Configure before Execute.
var (
	splitService   driving.SplitService
	mergeService   driving.MergeService
	inspectService driving.InspectService
	historyService driving.HistoryService
	fileValidator  driving.FileValidator
	settingsStore  driven.SettingsStore
)

// Services groups everything the commands need.
type Services struct {
	Split     driving.SplitService
	Merge     driving.MergeService
	Inspect   driving.InspectService
	History   driving.HistoryService
	Validator driving.FileValidator
	Settings  driven.SettingsStore
}

// Configure wires the services into the commands.
func Configure(s Services) {
	splitService = s.Split
	mergeService = s.Merge
	inspectService = s.Inspect
	historyService = s.History
	fileValidator = s.Validator
	settingsStore = s.Settings
}

// Execute runs the root command with the given version string.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose logging")
}

// settingString reads a default from the settings store.
func settingString(key, fallback string) string {
	if settingsStore == nil {
		return fallback
	}
	if v := settingsStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

// settingBool reads a boolean default from the settings store.
func settingBool(key string, fallback bool) bool {
	if settingsStore == nil {
		return fallback
	}
	return settingsStore.GetBool(key, fallback)
}
