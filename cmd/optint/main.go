// SPDX-License-Identifier: MIT

// Command optint builds the chemical and optical models, prunes them to their
// reachable states, evolves them and reports which states end up occupied.
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
		fmt.Fprintln(os.Stderr, "optint:", err)
		os.Exit(1)
	}
}
