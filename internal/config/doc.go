// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - EngineConfig: Where the conversion engine lives and how long to wait
//   - ComposeConfig: Group and rule scaffolding of the composed document
//   - UIConfig: Theme, status timing and highlighting
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (LINK2CLASH_*), optionally seeded from a .env file
//   - ~/.link2clash/config.toml
//   - ~/.link2clash/config.json
//   - Built-in defaults
//
// # Usage
//
//	_ = config.LoadDotEnv(".env")
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client := convert.NewClientWithConfig(cfg.ClientConfig())
package config
