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

package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDecodesTOML(t *testing.T) {
	cfg, err := Load("testdata/node.toml")
	require.NoError(t, err)

	require.Equal(t, slog.LevelDebug, cfg.Log.Level())
	require.Equal(t, "0.0.0.0:9000", cfg.P2P.Listen)
	require.Equal(t, []string{"10.0.0.1:9000", "10.0.0.2:9000"}, cfg.P2P.Peers)
	require.Equal(t, 5000, cfg.Mempool.PoolMaxEntries)
	require.Equal(t, "highest-fee-first", cfg.Selection.Strategy)
	require.Equal(t, 500, cfg.Selection.MaxPerBlock)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("testdata/does-not-exist.toml")
	require.Error(t, err)
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	require.Equal(t, "oldest-first", cfg.Selection.Strategy)
	require.Equal(t, 250, cfg.Selection.MaxPerBlock)
	require.Equal(t, slog.LevelInfo, cfg.Log.Level())
}

func TestLogConfigUnrecognizedLevelDefaultsToInfo(t *testing.T) {
	lc := LogConfig{LevelName: "not-a-level"}
	require.Equal(t, slog.LevelInfo, lc.Level())
}
