//go:build !windows

package grpcservice

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"go.klb.dev/clipqture/internal/ipc"
)

// serveSocket runs the control service, the gateway and the trigger
// listener on one instance socket, wired like the daemon.
func serveSocket(t *testing.T, svc *Service) (string, <-chan struct{}) {
	t.Helper()
	dir, err := os.MkdirTemp("", "cq")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	path := filepath.Join(dir, ipc.SocketName)

	ln, err := ipc.Acquire(path)
	require.NoError(t, err)
	chans := ipc.Split(ln)

	rpc := grpc.NewServer()
	Register(rpc, svc)
	gw, err := NewGateway(svc)
	require.NoError(t, err)

	triggers := make(chan struct{}, 8)
	go func() { _ = ipc.ServeTriggers(chans.Trigger, triggers) }()
	go func() { _ = rpc.Serve(chans.RPC) }()
	go func() { _ = ServeHTTP(chans.HTTP, gw) }()
	go func() { _ = chans.Serve() }()
	t.Cleanup(func() {
		rpc.Stop()
		_ = chans.Close()
	})
	return path, triggers
}

func TestOneSocketServesRPCGatewayAndTriggers(t *testing.T) {
	store := newStore()
	path, triggers := serveSocket(t, New(store, testOpts, nil))

	// gRPC
	cc, err := DialSocket(path)
	require.NoError(t, err)
	defer cc.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h, err := NewClient(cc).History(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, h.MaxItems)
	require.Len(t, h.Entries, 3)
	assert.Equal(t, "third", h.Entries[0].Text)

	// HTTP/1.1 gateway
	hc := &http.Client{
		Timeout: 5 * time.Second,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", path)
			},
		},
	}
	resp, err := hc.Get("http://clipqture" + HistoryPath)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var viaHTTP History
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&viaHTTP))
	assert.Equal(t, h, viaHTTP)

	// raw trigger byte
	require.NoError(t, ipc.Trigger(path))
	select {
	case <-triggers:
	case <-time.After(2 * time.Second):
		t.Fatal("trigger not delivered")
	}

	// clear over gRPC is visible through the store
	require.NoError(t, NewClient(cc).Clear(ctx))
	assert.Equal(t, 0, store.Len())
}
