// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// SetupLogger installs a text handler with the configured level as
// the process-wide default slog logger. When a log file is configured
// (the default), logs land there and the returned closer must be
// closed at the process exit; the interactive terminal stays clean
// that way. Without a file, logs go to the standard error stream and
// a nil closer is returned.
func (c *Config) SetupLogger() (io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logger.Level)); err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", c.Logger.Level, err)
	}
	out := io.Writer(os.Stderr)
	var closer io.Closer
	if c.Logger.File != "" {
		path := c.Logger.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.Storage.DataDir, path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(
			path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644,
		)
		if err != nil {
			return nil, fmt.Errorf("opening log file %q: %w", path, err)
		}
		out, closer = f, f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	})))
	return closer, nil
}
