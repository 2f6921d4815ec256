package cli

import (
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/lociq/sdlsplit/internal/core/ports/driving"
)

// progressPrinter returns a progress callback that rate-limits output
// so large documents do not flood the terminal. Completion is always
// printed.
func progressPrinter(cmd *cobra.Command) driving.ProgressFunc {
	lim := rate.NewLimiter(rate.Every(200*time.Millisecond), 1)
	return func(percent int, message string) {
		if percent < 100 && !lim.Allow() {
			return
		}
		cmd.Printf("[%3d%%] %s\n", percent, message)
	}
}
