// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the aggregate statistics snapshot and exit",
	RunE:  showStats,
}

func showStats(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	garage, closer, err := newGarage(ctx)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	st := garage.Statistics()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total Cars Registered: %d\n", st.TotalCars)
	fmt.Fprintf(out, "Total Services Completed: %d\n", st.TotalServices)
	fmt.Fprintf(out, "Total Revenue: $%s\n", st.TotalRevenue.StringFixed(2))
	if st.MostPopularService != "" {
		fmt.Fprintf(
			out, "Most Popular Service: %s (%d times)\n",
			st.MostPopularService, st.MostPopularCount,
		)
	}
	fmt.Fprintf(out, "Services This Week: %d\n", st.RecentServices)
	return nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
