// Command sdlsplit splits SDLXLIFF translation documents into
// independently valid parts and merges them back.
package main

import (
	"fmt"
	"os"

	"github.com/lociq/sdlsplit/internal/adapters/driven/config/file"
	"github.com/lociq/sdlsplit/internal/adapters/driven/encoding"
	"github.com/lociq/sdlsplit/internal/adapters/driven/filestore"
	"github.com/lociq/sdlsplit/internal/adapters/driven/storage/sqlite"
	"github.com/lociq/sdlsplit/internal/adapters/driving/cli"
	"github.com/lociq/sdlsplit/internal/core/ports/driven"
	"github.com/lociq/sdlsplit/internal/core/services"
	"github.com/lociq/sdlsplit/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := file.NewSettingsStore(os.Getenv("SDLSPLIT_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening settings: %w", err)
	}

	// History is best-effort: the engine works without it.
	var history driven.HistoryStore
	store, err := sqlite.NewStore(os.Getenv("SDLSPLIT_DATA_DIR"))
	if err != nil {
		logger.Warn("history store unavailable: %v", err)
	} else {
		history = store
		defer store.Close()
	}

	files := filestore.New(encoding.NewCodec())
	validator := services.NewValidationService()

	cli.Configure(cli.Services{
		Split:     services.NewSplitService(files, history, validator),
		Merge:     services.NewMergeService(files, history, validator),
		Inspect:   services.NewInspectService(files),
		History:   services.NewHistoryService(history),
		Validator: services.NewFileValidator(files, validator),
		Settings:  settings,
	})
	return cli.Execute(version)
}
