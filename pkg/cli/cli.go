// Package cli parses command line arguments and environment fallbacks.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Config holds the settings parsed from command line arguments.
type Config struct {
	InputFile     string // patch script path
	OutputFile    string // patch output path
	Game          string // game edition (doom19, udoom19)
	Tier          string // compatibility tier (base, extended, extended21)
	SourceCharset string // IANA charset of the source file
	OutputCharset string // IANA charset of the written patch
	LogLevel      string // log level (debug, info, warn, error)
	ShowHelp      bool   // help flag
}

// ParseArgs parses command line arguments into a Config.
// Flags win over environment variables.
func ParseArgs(args []string) (*Config, error) {
	// Reorder: flags first, positional arguments last
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("decopatch", flag.ContinueOnError)

	config := &Config{}

	fs.StringVar(&config.OutputFile, "output", "dehacked.lmp", "output patch path")
	fs.StringVar(&config.OutputFile, "o", "dehacked.lmp", "output patch path (shorthand)")
	fs.StringVar(&config.Game, "game", "doom19", "game edition (doom19, udoom19)")
	fs.StringVar(&config.Game, "g", "doom19", "game edition (shorthand)")
	fs.StringVar(&config.Tier, "tier", "base", "compatibility tier (base, extended, extended21)")
	fs.StringVar(&config.Tier, "t", "base", "compatibility tier (shorthand)")
	fs.StringVar(&config.SourceCharset, "source-charset", "utf-8", "IANA charset of the source file")
	fs.StringVar(&config.OutputCharset, "output-charset", "windows-1252", "IANA charset of the written patch")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (shorthand)")
	fs.BoolVar(&config.ShowHelp, "help", false, "show help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show help (shorthand)")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// Environment fallbacks (flags win)
	if config.Tier == "base" {
		if tierEnv := os.Getenv("DECOPATCH_TIER"); tierEnv != "" {
			config.Tier = strings.ToLower(tierEnv)
		}
	}
	if config.Game == "doom19" {
		if gameEnv := os.Getenv("DECOPATCH_GAME"); gameEnv != "" {
			config.Game = strings.ToLower(gameEnv)
		}
	}
	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	validTiers := map[string]bool{
		"base":       true,
		"extended":   true,
		"extended21": true,
	}
	if !validTiers[config.Tier] {
		return nil, fmt.Errorf("invalid tier: %s (must be base, extended, or extended21)", config.Tier)
	}

	validGames := map[string]bool{
		"doom19":  true,
		"udoom19": true,
	}
	if !validGames[config.Game] {
		return nil, fmt.Errorf("invalid game edition: %s (must be doom19 or udoom19)", config.Game)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	// Positional argument: the input script
	if fs.NArg() > 0 {
		config.InputFile = fs.Arg(0)
	}

	return config, nil
}

// reorderArgs moves flags before positional arguments.
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)

			// A value may follow (-t extended style)
			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				if arg != "-h" && arg != "--help" {
					i++
					flags = append(flags, args[i])
				}
			}
		} else {
			positional = append(positional, arg)
		}
	}

	return append(flags, positional...)
}

// PrintHelp prints the usage message.
func PrintHelp() {
	fmt.Fprintf(os.Stdout, `decopatch - behavior patch compiler

Usage:
  decopatch [options] <script-file>

Arguments:
  script-file    patch script to compile; #include directives resolve
                 relative to the script's directory

Options:
  -o, --output <file>         output patch path (default: dehacked.lmp)
  -g, --game <edition>        game edition: doom19, udoom19 (default: doom19)
  -t, --tier <tier>           compatibility tier: base, extended, extended21
                              (default: base)
  --source-charset <name>     IANA charset of the source file (default: utf-8)
  --output-charset <name>     IANA charset of the written patch
                              (default: windows-1252)
  -l, --log-level <level>     log level: debug, info, warn, error (default: info)
  -h, --help                  show this help

Environment Variables:
  DECOPATCH_TIER=<tier>       compatibility tier
  DECOPATCH_GAME=<edition>    game edition
  LOG_LEVEL=<level>           log level

Examples:
  decopatch monsters.dh                   compile with vanilla slots only
  decopatch -t extended21 monsters.dh     allow typed action arguments
  decopatch -g udoom19 -o out.deh m.dh    Ultimate baseline, custom output
  LOG_LEVEL=debug decopatch monsters.dh   verbose stage logging
`)
}
