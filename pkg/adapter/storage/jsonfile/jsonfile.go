// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package jsonfile implements the repo.Records persistence port over
// two independent JSON text files inside one data directory. Each
// SaveAll call rewrites both files in full; there is no append-based
// or incremental write path. A file is replaced by writing a temporary
// sibling file and renaming it over the old one, so a failed save
// never leaves a file truncated relative to its last good state. The
// two files are still written independently of each other, without a
// cross-file transaction.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/momeni/smartcar-care/pkg/core/cerr"
	"github.com/momeni/smartcar-care/pkg/core/model"
)

// Backing file names inside the data directory.
const (
	CarsFileName     = "cars.json"
	ServicesFileName = "services.json"
)

// Store keeps the data directory path and implements the repo.Records
// interface. It holds no record state beyond one Load or SaveAll call.
type Store struct {
	dir string
}

// New instantiates a Store over the given data directory, creating
// the directory (and its missing parents) if it does not exist yet.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, cerr.StorageWrite(
			fmt.Errorf("creating data directory %q: %w", dir, err),
		)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory path of the s store.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads both containers from their backing files. A missing file
// yields a nil (empty) container, while an unreadable or malformed
// file is reported with the cerr.KindStorageRead kind.
func (s *Store) Load(ctx context.Context) (
	[]model.Car, []model.ServiceRecord, error,
) {
	var cars []model.Car
	if err := s.loadFile(ctx, CarsFileName, &cars); err != nil {
		return nil, nil, err
	}
	var services []model.ServiceRecord
	if err := s.loadFile(ctx, ServicesFileName, &services); err != nil {
		return nil, nil, err
	}
	return cars, services, nil
}

// SaveAll rewrites both backing files with the given containers. Nil
// containers are serialized as empty JSON arrays, not as null, so the
// files always hold an array of flat records.
func (s *Store) SaveAll(
	ctx context.Context, cars []model.Car, services []model.ServiceRecord,
) error {
	if cars == nil {
		cars = []model.Car{}
	}
	if err := s.writeFile(ctx, CarsFileName, cars); err != nil {
		return err
	}
	if services == nil {
		services = []model.ServiceRecord{}
	}
	return s.writeFile(ctx, ServicesFileName, services)
}

func (s *Store) loadFile(ctx context.Context, name string, out any) error {
	if err := ctx.Err(); err != nil {
		return cerr.StorageRead(err)
	}
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil // first run, the container starts empty
	case err != nil:
		return cerr.StorageRead(fmt.Errorf("reading %q: %w", path, err))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return cerr.StorageRead(fmt.Errorf("decoding %q: %w", path, err))
	}
	return nil
}

// writeFile serializes v and replaces the name file atomically using
// a temporary file in the same directory, so the rename cannot cross
// a filesystem boundary.
func (s *Store) writeFile(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return cerr.StorageWrite(err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return cerr.StorageWrite(fmt.Errorf("encoding %q: %w", name, err))
	}
	data = append(data, '\n')
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return cerr.StorageWrite(
			fmt.Errorf("creating temporary file for %q: %w", name, err),
		)
	}
	defer os.Remove(tmp.Name()) // a no-op after a successful rename
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return cerr.StorageWrite(
			fmt.Errorf("writing %q: %w", tmp.Name(), err),
		)
	}
	if err := tmp.Close(); err != nil {
		return cerr.StorageWrite(
			fmt.Errorf("closing %q: %w", tmp.Name(), err),
		)
	}
	path := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return cerr.StorageWrite(
			fmt.Errorf("replacing %q: %w", path, err),
		)
	}
	return nil
}
