// Package main is the entrypoint of the hoopstat CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/hoopstat/cmd"
	"github.com/huangsam/hoopstat/internal/iocache"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd.SetRootContext(ctx)
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()
	stop()
	iocache.CloseStores()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
