package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/photosphere/internal/presentation/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := Execute(ctx)
	stop()
	if err != nil {
		report.Failure(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
