// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for link2clash.
//
// Command: config [subcommand]
// Short:   View and manage configuration
//
// Subcommands:
//   show (default)      Display the effective configuration as TOML
//   path                Show configuration file locations
//   init [--force]      Write a default config.toml
//   get <key>           Print one value by its file key
//
// Examples:
//   link2clash config
//   link2clash config show --json
//   link2clash config init
//   link2clash config get engine.url
//   link2clash config get compose.rules
//
// Flags:
//   --json              Output in JSON format

package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/jeranaias/link2clash-tui/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	return runConfig(args, os.Stdout)
}

func runConfig(args Args, w io.Writer) error {
	p := NewArgParser(args.Raw, "force")

	switch p.Subcommand() {
	case "", "show":
		return configShow(w, args.JSON)
	case "path":
		return configPath(w, args.JSON)
	case "init":
		return configInit(w, args.JSON, p.BoolFlag("force"))
	case "get":
		key := p.Positional(1)
		if key == "" {
			return ErrMissingArgument("key", "link2clash config get engine.url")
		}
		return configGet(w, args.JSON, key)
	default:
		return NewValidationErrorWithExample("subcommand", p.Subcommand(),
			"unknown config subcommand", "link2clash config [show|path|init|get KEY]")
	}
}

func configShow(w io.Writer, jsonMode bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if jsonMode {
		return NewJSONResponse("config show", cfg).Print(w)
	}
	data, err := cfg.TOML()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func configPath(w io.Writer, jsonMode bool) error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	tomlPath, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	jsonPath, err := config.ConfigPathJSON()
	if err != nil {
		return err
	}

	if jsonMode {
		return NewJSONResponse("config path", ConfigPathData{Dir: dir, TOML: tomlPath, JSON: jsonPath}).Print(w)
	}
	fmt.Fprintf(w, "%s%s\n", LabelStyle.Render("dir"), dir)
	fmt.Fprintf(w, "%s%s%s\n", LabelStyle.Render("toml"), tomlPath, existsMarker(tomlPath))
	fmt.Fprintf(w, "%s%s%s\n", LabelStyle.Render("json"), jsonPath, existsMarker(jsonPath))
	return nil
}

func existsMarker(path string) string {
	if _, err := os.Stat(path); err == nil {
		return DimStyle.Render(" (exists)")
	}
	return ""
}

func configInit(w io.Writer, jsonMode, force bool) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return NewCommandError("config", "init", path+" already exists (use --force to overwrite)", nil)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return NewCommandError("config", "init", "cannot inspect "+path, err)
	}

	if err := config.Save(config.Default()); err != nil {
		return NewCommandError("config", "init", "cannot write "+path, err)
	}

	if jsonMode {
		return NewJSONResponse("config init", map[string]string{"path": path}).Print(w)
	}
	fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("Wrote"), path)
	return nil
}

func configGet(w io.Writer, jsonMode bool, key string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	val, err := cfg.Get(key)
	if err != nil {
		return &NotFoundError{Resource: "config key", ID: key}
	}

	if jsonMode {
		return NewJSONResponse("config get", map[string]interface{}{"key": key, "value": val}).Print(w)
	}
	switch v := val.(type) {
	case []string:
		fmt.Fprintln(w, strings.Join(v, "\n"))
	default:
		fmt.Fprintln(w, v)
	}
	return nil
}
