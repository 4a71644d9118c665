package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intConfig map[string]int

func (c intConfig) GetString(string) string { return "" }
func (c intConfig) GetInt(key string) int { return c[key] }
func (c intConfig) GetBool(string) bool { return false }
func (c intConfig) GetDuration(string) time.Duration { return 0 }
func (c intConfig) Close() error { return nil }

func TestStop_RunsClosersInOrder(t *testing.T) {
	var logs bytes.Buffer
	a := &App{
		httpServer: &http.Server{},
		log:        slog.New(slog.NewTextHandler(&logs, nil)).With("service", serviceName),
	}

	var order []string
	a.addCloser("Storefront", func(context.Context) error {
		order = append(order, "Storefront")
		return errors.New("redis gone")
	})
	a.addCloser("Config", func(context.Context) error {
		order = append(order, "Config")
		return nil
	})

	err := a.Stop(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "redis gone")
	assert.Equal(t, []string{"Storefront", "Config"}, order, "a failing closer does not stop the rest")
	assert.Contains(t, logs.String(), "service=goflightstore")
	assert.Contains(t, logs.String(), "name=Storefront")
	assert.Contains(t, logs.String(), "failed_closers=1")
}

func TestStop_Clean(t *testing.T) {
	a := &App{httpServer: &http.Server{}, log: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))}
	a.addCloser("Config", func(context.Context) error { return nil })
	assert.NoError(t, a.Stop(context.Background()))
}

func TestShutdownTimeout(t *testing.T) {
	assert.Equal(t, defaultShutdownTimeout, (&App{}).ShutdownTimeout())
	assert.Equal(t, defaultShutdownTimeout, (&App{config: intConfig{}}).ShutdownTimeout())
	a := &App{config: intConfig{"app.server.shutdown_timeout_seconds": 3}}
	assert.Equal(t, 3*time.Second, a.ShutdownTimeout())
}
