// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// compose_cmd.go - Offline document composition.
//
// Command: compose --proxies F --groups F [--out F] [--lint]
// Short:   Build a configuration document from saved engine output
//
// Examples:
//   link2clash convert links.txt --show proxies > proxies.txt
//   link2clash convert links.txt --show groups > groups.txt
//   link2clash compose --proxies proxies.txt --groups groups.txt --out clash.yaml

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/link2clash-tui/internal/compose"
	"github.com/jeranaias/link2clash-tui/internal/config"
	"github.com/jeranaias/link2clash-tui/internal/util"
)

// HandleCompose handles the "compose" command.
func HandleCompose(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	composer, err := cfg.Composer()
	if err != nil {
		return err
	}
	return runCompose(args, composer, os.Stdout)
}

func runCompose(args Args, composer *compose.Composer, w io.Writer) error {
	p := NewArgParser(args.Raw, "lint")

	proxies, err := readComposeInput(p, "proxies")
	if err != nil {
		return err
	}
	groups, err := readComposeInput(p, "groups")
	if err != nil {
		return err
	}

	doc := composer.Compose(proxies, groups)
	if p.BoolFlag("lint") {
		if err := compose.Lint(doc); err != nil {
			return NewCommandError("compose", "lint", "composed document is invalid", err)
		}
	}

	data := ComposeData{Document: doc}
	if out := p.Flag("out"); out != "" {
		if err := util.AtomicWriteFile(out, []byte(doc), 0644); err != nil {
			return NewCommandError("compose", "write", out, err)
		}
		data.Output = out
	}

	if args.JSON {
		return NewJSONResponse("compose", data).Print(w)
	}
	if data.Output == "" || !args.Quiet {
		fmt.Fprint(w, doc)
	}
	return nil
}

// readComposeInput reads the file named by --<flag>. Empty text is rejected,
// since a document is only composed from both kinds of output.
func readComposeInput(p *ArgParser, flag string) (string, error) {
	path := p.Flag(flag)
	if path == "" {
		return "", ErrMissingArgument(flag, "link2clash compose --proxies proxies.txt --groups groups.txt")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", flag, err)
	}
	text := strings.TrimRight(string(data), "\n")
	if strings.TrimSpace(text) == "" {
		return "", NewValidationError(flag, path, "file is empty")
	}
	return text, nil
}
