// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBoundsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "bounds",
		Short: "Print the dataset's source, row count and date bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, table, err := e.setup(cmd.Context())
			if err != nil {
				return err
			}
			info := table.Info()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "source:   %s\n", info.Source)
			fmt.Fprintf(w, "rows:     %d\n", info.Rows)
			fmt.Fprintf(w, "min_date: %s\n", info.MinDate)
			fmt.Fprintf(w, "max_date: %s\n", info.MaxDate)
			return nil
		},
	}
}
