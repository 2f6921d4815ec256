package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lociq/sdlsplit/internal/core/ports/driven"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read or change persisted defaults",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Changes a persisted default. Known keys:

  preserve_groups    bool    never split a group across parts
  merge_mode         string  reconstruct, overlay or byte-exact
  duplicate_policy   string  first or last
  duplicate_context  bool    re-embed context blocks into every part
  part_naming        string  NofM or partN`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	key := args[0]
	switch key {
	case driven.SettingPreserveGroups, driven.SettingDuplicateContext:
		cmd.Printf("%s = %t\n", key, settingsStore.GetBool(key, true))
	default:
		value := settingsStore.GetString(key)
		if value == "" {
			cmd.Printf("%s is not set\n", key)
			return nil
		}
		cmd.Printf("%s = %s\n", key, value)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	key, raw := args[0], args[1]
	var value any = raw
	if b, err := strconv.ParseBool(raw); err == nil {
		value = b
	} else if n, err := strconv.Atoi(raw); err == nil {
		value = n
	}

	if err := settingsStore.Set(key, value); err != nil {
		return err
	}
	cmd.Printf("%s = %v\n", key, value)
	return nil
}
