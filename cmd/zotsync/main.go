package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			// Interrupt mid-run: in-flight updates already landed or
			// failed cleanly, and the next run reconciles the rest.
			fmt.Fprintln(os.Stderr, "zotsync: interrupted")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "zotsync:", err)
		os.Exit(1)
	}
}
