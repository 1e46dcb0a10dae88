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

package xlog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToNonTTY(t *testing.T) {
	var buf bytes.Buffer
	log := New(slog.LevelInfo, &buf, "component", "test")
	log.Info("hello", "key", "value")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "hello", record["msg"])
	require.Equal(t, "test", record["component"])
	require.Equal(t, "value", record["key"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(slog.LevelWarn, &buf)
	log.Info("should not appear")
	require.Empty(t, buf.String())

	log.Warn("should appear")
	require.NotEmpty(t, buf.String())
}

func TestNewChildLoggerInheritsContext(t *testing.T) {
	var buf bytes.Buffer
	root := New(slog.LevelInfo, &buf, "root", "r")
	child := root.New("child", "c")
	child.Info("msg")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "r", record["root"])
	require.Equal(t, "c", record["child"])
}

func TestNopDiscardsOutput(t *testing.T) {
	require.NotPanics(t, func() { Nop.Info("anything") })
}
