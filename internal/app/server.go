package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func (a *App) Start() <-chan struct{} {
	terminateChan := make(chan struct{})

	go func() {
		a.logger().Info("http server listening", "address", a.httpServer.Addr)

		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			a.logger().Error("failed to listen and serve http server", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

		sig := <-sigint
		a.logger().Info("shutdown requested", "signal", sig.String())

		terminateChan <- struct{}{}
		close(terminateChan)
	}()

	return terminateChan
}

// Stop drains the HTTP server first so no request reaches a closed module,
// then runs every closer even when an earlier one fails.
func (a *App) Stop(ctx context.Context) error {
	log := a.logger()
	var errs []error

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			log.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
			errs = append(errs, err)
		}
	}

	for _, c := range a.closers {
		if err := c.fn(ctx); err != nil {
			log.ErrorContext(ctx, "failed to close resources", "name", c.name, "error", err)
			errs = append(errs, err)
			continue
		}
		log.DebugContext(ctx, "resource closed", "name", c.name)
	}

	err := errors.Join(errs...)
	log.LogAttrs(ctx, levelOf(err), "application stopped", slog.Int("failed_closers", len(errs)))
	return err
}

func levelOf(err error) slog.Level {
	if err != nil {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
