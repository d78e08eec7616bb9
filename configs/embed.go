// Package configs provides embedded configuration templates for QuranKit.
//
// Templates are embedded at build time using Go's //go:embed directive so
// they are available in every distribution (source builds and binary
// releases alike).
//
// Configuration hierarchy (see internal/config/config.go Load()):
//  1. Hardcoded defaults (internal/config/config.go NewConfig())
//  2. User config (~/.config/qurankit/config.yaml)
//  3. Data-directory config (qurankit.yaml)
//  4. Environment variables (QURANKIT_*)
package configs

import _ "embed"

// UserConfigTemplate is the template for the user configuration file.
// Created by `qurankit config init` at ~/.config/qurankit/config.yaml.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string
