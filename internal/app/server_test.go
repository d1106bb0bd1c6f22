package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T, port int) *Application {
	t.Helper()

	application := &Application{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	application.Config.HttpPort = port

	return application
}

func freePort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	return port
}

func TestServeHTTP_ShutsDownOnCancel(t *testing.T) {
	application := newTestApplication(t, freePort(t))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- application.ServeHTTP(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}

func TestServeHTTP_PortInUse(t *testing.T) {
	baseline := runtime.NumGoroutine()

	listener, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer listener.Close()

	application := newTestApplication(t, listener.Addr().(*net.TCPAddr).Port)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- application.ServeHTTP(ctx) }()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not report the bind failure")
	}

	// nothing reads the shutdown result now, the goroutine still has to exit
	cancel()
	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= baseline
	}, 2*time.Second, 10*time.Millisecond)
}
