// Package app wires the command line front end to the compiler.
package app

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/zurustar/decopatch/pkg/cli"
	"github.com/zurustar/decopatch/pkg/compiler"
	"github.com/zurustar/decopatch/pkg/logger"
	"github.com/zurustar/decopatch/pkg/patch"
)

// Application drives one compile run.
type Application struct {
	config *cli.Config
	log    *slog.Logger
}

// New creates an Application.
func New() *Application {
	return &Application{}
}

// Run executes the application.
func (app *Application) Run(args []string) error {
	// 1. Parse command line arguments
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp()
		return nil
	}

	if app.config.InputFile == "" {
		cli.PrintHelp()
		return fmt.Errorf("no input file given")
	}

	// 2. Initialize the logger
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.log.Info("Compilation started",
		"input", app.config.InputFile,
		"game", app.config.Game,
		"tier", app.config.Tier)

	// 3. Compile the script
	tier, err := patch.ParseTier(app.config.Tier)
	if err != nil {
		return err
	}

	result, err := compiler.CompileFile(app.config.InputFile, compiler.Options{
		Edition:       app.config.Game,
		Tier:          tier,
		SourceCharset: app.config.SourceCharset,
	})
	if err != nil {
		app.log.Error("Compilation failed", "input", app.config.InputFile, "error", err)
		return err
	}

	app.log.Info("Compilation succeeded", "bytes", len(result.Patch))
	app.log.Debug("Patch preview", "preview", truncate(result.Patch, 200))

	// 4. Encode and write the patch
	encoded, err := encodePatch(result.Patch, app.config.OutputCharset)
	if err != nil {
		return fmt.Errorf("failed to encode patch: %w", err)
	}

	if err := os.WriteFile(app.config.OutputFile, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write patch: %w", err)
	}

	app.log.Info("Patch written", "output", app.config.OutputFile)
	return nil
}

// parseArgs parses command line arguments.
func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

// initLogger initializes the logger.
func (app *Application) initLogger() error {
	if err := logger.InitLogger(app.config.LogLevel); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

// encodePatch converts the patch text from UTF-8 to the output charset.
func encodePatch(text, charset string) ([]byte, error) {
	switch charset {
	case "", "utf-8", "utf8":
		return []byte(text), nil
	}

	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown output charset: %s", charset)
	}

	encoded, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("charset %s cannot represent the patch text: %w", charset, err)
	}
	return encoded, nil
}

// truncate shortens a string for log previews.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
