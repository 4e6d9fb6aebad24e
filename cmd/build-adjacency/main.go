// SPDX-License-Identifier: MIT

// Command build-adjacency scores every pair of inter-robot loop closures in a
// YAML document and writes the pairwise-consistency adjacency matrix in
// Matrix Market format.
//
//	build-adjacency closures.yaml adjacency.mtx --gamma 0.5 --workers 0
//	build-adjacency simulate closures.yaml --config run.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
