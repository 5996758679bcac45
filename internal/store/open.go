// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package store

import (
	"context"
	"fmt"
	"time"
)

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverDuckDB = "duckdb"
)

// Config selects and tunes the store backend.
type Config struct {
	Driver    string `koanf:"driver"`
	Path      string `koanf:"path"`
	Threads   int    `koanf:"threads"`
	MaxMemory string `koanf:"max_memory"`
	// Seed loads the demo data set after opening.
	Seed bool `koanf:"seed"`
}

// Open builds the configured Store.
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Driver {
	case DriverMemory, "":
		s = NewMemory()
	case DriverDuckDB:
		s, err = OpenDuckDB(ctx, cfg.Path, cfg.Threads, cfg.MaxMemory)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Seed {
		if err := Seed(ctx, s, time.Now().UTC()); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}
	return s, nil
}
