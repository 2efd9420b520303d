// link2clash - convert proxy share links into a Clash configuration.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/link2clash-tui/internal/cli"
	"github.com/jeranaias/link2clash-tui/internal/clipboard"
	"github.com/jeranaias/link2clash-tui/internal/config"
	"github.com/jeranaias/link2clash-tui/internal/convert"
	"github.com/jeranaias/link2clash-tui/internal/ui/app"
	"github.com/jeranaias/link2clash-tui/internal/ui/components"
	"github.com/jeranaias/link2clash-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	// .env values never override the real environment.
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cmd, args := cli.Parse()

	if cmd != cli.CmdTUI {
		if args.Verbose {
			log.SetOutput(os.Stderr)
		} else {
			log.SetOutput(io.Discard)
		}
	}

	var err error
	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdConvert:
		err = cli.HandleConvert(args)
	case cli.CmdCompose:
		err = cli.HandleCompose(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersionWithJSON(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		cli.HandleUnknown(args)
	}

	cli.HandleErrorAndExit(cmd.String(), err, args.JSON)
}

func runTUI(args cli.Args) {
	// The alt-screen owns the terminal, so the logger goes to a file or nowhere.
	if path := os.Getenv("LINK2CLASH_DEBUG"); path != "" {
		f, err := tea.LogToFile(path, "link2clash")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		cli.HandleErrorAndExit("tui", err, args.JSON)
	}
	composer, err := cfg.Composer()
	if err != nil {
		cli.HandleErrorAndExit("tui", err, args.JSON)
	}

	client := convert.NewClientWithConfig(cfg.ClientConfig())

	m := app.New(app.Options{
		Theme:       styles.NewTheme(cfg.UI.Theme),
		Converter:   client,
		Copier:      clipboard.NewDefaultService(cfg.Clipboard.OSC52Fallback),
		Composer:    composer,
		StatusDelay: cfg.StatusDelay(),
		Highlighter: components.NewHighlighter(cfg.UI.Highlight, cfg.UI.HighlightStyle),
		EngineURL:   client.URL(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running link2clash: %v\n", err)
		os.Exit(1)
	}
}
