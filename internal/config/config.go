// Copyright 2024 The Bramble Authors
// This file is part of the bramble library.
//
// The bramble library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The bramble library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.

// Package config decodes the node's TOML configuration file: listen
// identity, selection engine parameters, and logging level. This is
// ambient start-up plumbing, not a wire or persistence format the
// core's spec governs.
package config

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/toml"
)

// Config is the top-level shape of a node's TOML configuration file.
type Config struct {
	Log       LogConfig       `toml:"log"`
	P2P       P2PConfig       `toml:"p2p"`
	Mempool   MempoolConfig   `toml:"mempool"`
	Selection SelectionConfig `toml:"selection"`
}

// LogConfig controls internal/xlog's root logger.
type LogConfig struct {
	LevelName string `toml:"level"`
}

// Level parses LevelName into a slog.Level, defaulting to Info for
// an empty or unrecognized string.
func (l LogConfig) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.LevelName)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// P2PConfig names this node's own listen identity and the static
// peers it dials at start-up. Address encoding and key handling are
// external collaborators (spec.md non-goal); Listen/Peers are opaque
// strings the transport interprets.
type P2PConfig struct {
	Listen string   `toml:"listen"`
	Peers  []string `toml:"peers"`
}

// MempoolConfig bounds the in-process fragment pool.
type MempoolConfig struct {
	PoolMaxEntries int `toml:"pool_max_entries"`
}

// SelectionConfig parameterizes the fragment selection engine.
type SelectionConfig struct {
	// Strategy is one of "oldest-first" or "highest-fee-first".
	Strategy    string `toml:"strategy"`
	MaxPerBlock int    `toml:"max_per_block"`
}

// Default returns the configuration a freshly-initialized node starts
// from, before any TOML file is applied.
func Default() Config {
	return Config{
		Log: LogConfig{LevelName: "info"},
		Mempool: MempoolConfig{
			PoolMaxEntries: 10_000,
		},
		Selection: SelectionConfig{
			Strategy:    "oldest-first",
			MaxPerBlock: 250,
		},
	}
}

// Load decodes the TOML file at path into a Config seeded with
// Default's values, so an omitted section keeps its default.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}
