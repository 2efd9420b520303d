// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// commands of link2clash.
//
// # Key Types
//
//   - Command: enumeration of the available commands
//   - Args: parsed global flags plus the remaining raw arguments
//   - ArgParser: per-command flag parsing
//   - JSONResponse: the --json output envelope
//
// # Usage
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdConvert:
//	    err = cli.HandleConvert(args)
//	case cli.CmdConfig:
//	    err = cli.HandleConfig(args)
//	}
//
// # Commands Overview
//
//   - tui: interactive terminal UI (default, implemented in package app)
//   - convert: one conversion, printed to stdout; --watch re-runs on change
//   - compose: build a document from saved proxy and group text
//   - config: show, locate, initialize and query configuration
//   - version, help
//
// # Exit Codes
//
// GetExitCode maps errors to exit codes: 2 for usage errors, 3 for
// configuration errors, 4 when the engine rejects a request, 5 when it
// cannot be reached, 7 for missing files or keys and 8 for timeouts.
package cli
