// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the
// SmartCar-Care project. Commands are organized using the cobra
// library. The root command starts the interactive terminal session
// itself while the "stats" sub-command prints the aggregate
// statistics snapshot without entering the menu loop.
//
//	./carcare [-c /path/of/main/config.yaml]   # interactive session
//	./carcare stats [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/momeni/smartcar-care/pkg/adapter/config"
	"github.com/momeni/smartcar-care/pkg/adapter/console"
	"github.com/momeni/smartcar-care/pkg/adapter/storage/jsonfile"
	"github.com/momeni/smartcar-care/pkg/core/usecase/garageuc"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "carcare",
	Short: "A single-operator car registration and service booking tracker",
	Long: `SmartCar-Care tracks car registrations and service bookings
for a small auto shop. Cars are registered with their plate number and
details, predefined catalog services are booked against them, and the
service history and aggregate statistics can be viewed at any time.
All records are persisted as two JSON files which are rewritten in
full after every mutation, so a single operator needs no database
server. The root command runs the interactive menu session.`,
	RunE: startSession,
}

func startSession(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	garage, closer, err := newGarage(ctx)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	sess := console.New(garage, os.Stdin, os.Stdout)
	if err := sess.Run(ctx); err != nil {
		return fmt.Errorf("running interactive session: %w", err)
	}
	return nil
}

// newGarage loads the configuration, instantiates the storage adapter
// and the garage use case, and pulls the persisted records in. The
// returned closer (owning the log file, if any) may be nil.
func newGarage(ctx context.Context) (*garageuc.UseCase, io.Closer, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	store, err := jsonfile.New(c.Storage.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}
	closer, err := c.SetupLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("setting up logger: %w", err)
	}
	garage, err := garageuc.New(
		store,
		garageuc.WithDuplicateWindowDays(c.Garage.DuplicateWindowDays),
		garageuc.WithRecentWindowDays(c.Garage.RecentWindowDays),
	)
	if err != nil {
		closeIgnoring(closer)
		return nil, nil, fmt.Errorf("creating garage use case: %w", err)
	}
	if err := garage.Load(ctx); err != nil {
		closeIgnoring(closer)
		return nil, nil, fmt.Errorf("loading records: %w", err)
	}
	return garage, closer, nil
}

func closeIgnoring(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code may
// be a boolean (zero for success and non-zero for failure) since no
// further error conditions need to be distinguished in the CLI of
// this program.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/carcare.yaml"
	}
}
