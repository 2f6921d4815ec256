package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a document's structural soundness",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if fileValidator == nil {
		return errors.New("validator not configured")
	}

	splitPart, err := fileValidator.ValidateFile(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("%s is not valid: %w", args[0], err)
	}

	cmd.Printf("%s is valid\n", args[0])
	if splitPart {
		cmd.Println("The file is a split part; use 'sdlsplit inspect' to see its descriptor.")
	}
	return nil
}
