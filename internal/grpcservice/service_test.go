package grpcservice

import (
	"context"
	"encoding/json"
	"image"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"go.klb.dev/clipqture/internal/history"
	"go.klb.dev/clipqture/internal/menu"
)

func newStore() *history.Store {
	s := history.New(5)
	s.Record("first", nil)
	s.Record("second\nline", history.ThemeIcon("edit-copy"))
	s.Record("third", history.BitmapIcon{Image: image.NewNRGBA(image.Rect(0, 0, 16, 8))})
	return s
}

var testOpts = menu.Options{MaxLineLength: 150, Compact: true}

// dial starts svc on an in-memory listener and returns a client for it.
func dial(t *testing.T, svc HistoryServer) *Client {
	t.Helper()
	ln := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	Register(srv, svc)
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(srv.Stop)

	cc, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return ln.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close() })
	return NewClient(cc)
}

func TestListOverGRPC(t *testing.T) {
	c := dial(t, New(newStore(), testOpts, nil))

	h, err := c.History(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, h.MaxItems)
	assert.Equal(t, []EntryView{
		{Text: "third", Label: "third", Icon: "bitmap:16x8"},
		{Text: "second\nline", Label: "second line", Icon: "theme:edit-copy"},
		{Text: "first", Label: "first", Icon: ""},
	}, h.Entries)
}

func TestListEmpty(t *testing.T) {
	c := dial(t, New(history.New(3), testOpts, nil))

	h, err := c.History(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, h.MaxItems)
	assert.Empty(t, h.Entries)
}

func TestClearOverGRPC(t *testing.T) {
	s := newStore()
	c := dial(t, New(s, testOpts, nil))

	require.NoError(t, c.Clear(context.Background()))
	assert.Equal(t, 0, s.Len())
}

func TestShowOverGRPC(t *testing.T) {
	var shown atomic.Int32
	c := dial(t, New(newStore(), testOpts, func() { shown.Add(1) }))

	require.NoError(t, c.Show(context.Background()))
	require.NoError(t, c.Show(context.Background()))
	assert.Equal(t, int32(2), shown.Load())
}

func TestShowWithoutPresenter(t *testing.T) {
	c := dial(t, New(newStore(), testOpts, nil))

	err := c.Show(context.Background())
	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestGatewayHistory(t *testing.T) {
	mux, err := NewGateway(New(newStore(), testOpts, nil))
	require.NoError(t, err)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + HistoryPath)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var h History
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&h))
	assert.Equal(t, 5, h.MaxItems)
	require.Len(t, h.Entries, 3)
	assert.Equal(t, "third", h.Entries[0].Text)
	assert.Equal(t, "theme:edit-copy", h.Entries[1].Icon)
}

func TestGatewayClearAndShow(t *testing.T) {
	s := newStore()
	var shown atomic.Int32
	mux, err := NewGateway(New(s, testOpts, func() { shown.Add(1) }))
	require.NoError(t, err)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Post(srv.URL+ClearPath, "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, s.Len())

	resp, err = http.Post(srv.URL+ShowPath, "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), shown.Load())
}

func TestGatewayErrors(t *testing.T) {
	mux, err := NewGateway(New(newStore(), testOpts, nil))
	require.NoError(t, err)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Post(srv.URL+ShowPath, "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/v1/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
