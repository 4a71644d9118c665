package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/goflightstore/internal/pkg/pkglog"
	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/goflightstore/internal/pkg/pkguid"
)

const (
	serviceName            = "goflightstore"
	defaultShutdownTimeout = 10 * time.Second
)

type closer struct {
	name string
	fn   func(context.Context) error
}

type App struct {
	config     pkgconfig.Config
	uuid       pkguid.StringID
	router     *pkgrouter.Router
	httpServer *http.Server
	log        *slog.Logger
	// closers run in registration order on Stop.
	closers []closer
}

func New() *App {
	pkglog.InitLogging()
	app := &App{log: slog.Default().With("service", serviceName)}
	app.initConfig()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()
	return app
}

// ShutdownTimeout bounds Stop. It reads app.server.shutdown_timeout_seconds.
func (a *App) ShutdownTimeout() time.Duration {
	if a.config != nil {
		if seconds := a.config.GetInt("app.server.shutdown_timeout_seconds"); seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultShutdownTimeout
}

func (a *App) addCloser(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

func (a *App) logger() *slog.Logger {
	if a.log == nil {
		return slog.Default()
	}
	return a.log
}
