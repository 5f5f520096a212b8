package api

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianowead/wead/pkg/store"
)

func TestStartServer(t *testing.T) {
	repo, err := store.Open(filepath.Join(t.TempDir(), "persons.csv"))
	require.NoError(t, err)

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- NewServerFactory().CreateServerStarter().StartServer(ctx, repo, ServerConfig{
				Bind:            "127.0.0.1",
				Port:            0,
				StatsInterval:   10 * time.Millisecond,
				ShutdownTimeout: time.Second,
			}, nil)
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop after cancellation")
		}
	})

	t.Run("fails when the port is taken", func(t *testing.T) {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer listener.Close()

		port := listener.Addr().(*net.TCPAddr).Port
		err = StartServer(context.Background(), repo, ServerConfig{Bind: "127.0.0.1", Port: port}, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to listen")
	})
}
