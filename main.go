package main

import (
	"context"
	"os"

	"github.com/shandysiswandi/goflightstore/internal/app"
)

func main() {
	application := app.New()
	<-application.Start() // blocks until SIGINT, SIGTERM or SIGHUP

	ctx, cancel := context.WithTimeout(context.Background(), application.ShutdownTimeout())
	defer cancel()
	if err := application.Stop(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
