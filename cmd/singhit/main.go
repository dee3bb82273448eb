package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/singhit/internal/cli"
)

func main() {
	// Cancel on interrupt so the last snapshot is still flushed
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
