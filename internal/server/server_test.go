package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/bookstore/internal/config"
)

func newTestServer() *Server {
	cfg := config.Default()
	cfg.Server.Port = "0"
	logger := zerolog.Nop()

	return &Server{Config: cfg, Logger: &logger}
}

func TestStart_RequiresHTTPServer(t *testing.T) {
	err := newTestServer().Start()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestSetupHTTPServer(t *testing.T) {
	s := newTestServer()
	s.SetupHTTPServer(http.NotFoundHandler())

	require.NotNil(t, s.httpServer)
	assert.Equal(t, ":0", s.httpServer.Addr)
	assert.Equal(t, 30*time.Second, s.httpServer.ReadTimeout)
	assert.Equal(t, 60*time.Second, s.httpServer.IdleTimeout)
}

func TestStartAndShutdown(t *testing.T) {
	s := newTestServer()
	s.SetupHTTPServer(http.NotFoundHandler())

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	// Give ListenAndServe a moment to bind before shutting down.
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err, "Start returns nil after a graceful shutdown")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestShutdown_WithoutDependencies(t *testing.T) {
	assert.NoError(t, newTestServer().Shutdown(context.Background()))
}
