// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command routing for link2clash.

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents a CLI command.
type Command int

const (
	// CmdTUI launches the interactive terminal UI (default).
	CmdTUI Command = iota
	// CmdConvert runs one conversion headlessly.
	CmdConvert
	// CmdCompose builds a document from saved entry and group text.
	CmdCompose
	// CmdConfig manages the configuration file.
	CmdConfig
	// CmdVersion prints version information.
	CmdVersion
	// CmdHelp prints usage.
	CmdHelp
	// CmdUnknown is an unrecognized command.
	CmdUnknown
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdConvert:
		return "convert"
	case CmdCompose:
		return "compose"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed command-line arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format

	// Name is the command word as typed, kept for unknown-command errors.
	Name string

	// Raw args (remaining after the command word and global flags)
	Raw []string
}

const usageText = `link2clash - convert share links into a Clash configuration

USAGE:
  link2clash [global flags] [command] [flags]

COMMANDS:
  tui                 Interactive terminal UI (default)
  convert             Convert links once and print the result
  compose             Build a document from saved proxy and group text
  config              Show or manage configuration
  version             Print version information
  help                Show this help

CONVERT FLAGS:
  --file F            Read links from F ("-" for stdin)
  --show S            document | proxies | groups | all (default: document)
  --out F             Also write the shown text to F
  --copy T            Copy proxies | groups | config to the clipboard
  --url URL           Engine base URL (overrides config)
  --lint              Check that the composed document parses as YAML
  --watch             Re-run whenever --file changes

COMPOSE FLAGS:
  --proxies F         File with proxy entry lines
  --groups F          File with group member lines
  --out F             Write the document to F

CONFIG SUBCOMMANDS:
  show                Print the effective configuration as TOML (default)
  path                Print configuration file locations
  init [--force]      Write a default config.toml
  get KEY             Print one value, e.g. engine.url

GLOBAL FLAGS:
  -v, --verbose       Log progress to stderr
  -q, --quiet         Only print results
  --json              Machine-readable output

EXAMPLES:
  link2clash
  link2clash convert --file links.txt --show all
  cat links.txt | link2clash convert --copy config
  link2clash convert --file links.txt --watch --out clash.yaml
  link2clash config get engine.url

ENVIRONMENT:
  LINK2CLASH_HOME            Configuration directory (default ~/.link2clash)
  LINK2CLASH_ENGINE_URL      Engine base URL
  LINK2CLASH_DEBUG           TUI log file path
  NO_COLOR                   Disable colored output
`

// PrintUsage prints the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "link2clash %s (commit %s, built %s, %s)\n",
		Version, GitCommit, BuildDate, runtime.Version())
}

// Parse parses os.Args and returns the command and its arguments.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name).
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	parsedArgs.Name = remaining[0]
	parsedArgs.Raw = remaining[1:]

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs
	case "convert", "c":
		return CmdConvert, parsedArgs
	case "compose":
		return CmdCompose, parsedArgs
	case "config":
		return CmdConfig, parsedArgs
	case "version", "--version":
		return CmdVersion, parsedArgs
	case "help", "-h", "--help":
		return CmdHelp, parsedArgs
	default:
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags strips the global flags from args wherever they appear.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for _, arg := range args {
		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleVersionWithJSON handles the "version" command with JSON output support.
func HandleVersionWithJSON(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		_ = NewJSONResponse("version", data).Print(os.Stdout)
		return
	}
	PrintVersion(os.Stdout)
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}

// HandleUnknown reports an unrecognized command and exits with a usage error.
func HandleUnknown(args Args) {
	err := NewValidationErrorWithExample("command", args.Name, "unknown command", "link2clash help")
	HandleErrorAndExit(args.Name, err, args.JSON)
}
