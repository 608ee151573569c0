// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

// Command marketscope-report exports the analytics dashboard for a date
// range to a JSON or YAML file, using the same configuration as the server.
//
//	marketscope-report export --start 2017-01-01 --end 2017-12-31 --format yaml --out ./reports
//	marketscope-report bounds
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(defaultEnv()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
