package ipc

import (
	"bytes"
	"errors"
	"io"
	"net"

	"github.com/soheilhy/cmux"
)

// Channels are the three protocols multiplexed on the instance socket.
type Channels struct {
	// RPC receives gRPC (HTTP/2) connections.
	RPC net.Listener
	// HTTP receives HTTP/1.x connections for the JSON gateway.
	HTTP net.Listener
	// Trigger receives raw trigger bytes from a second instance, and
	// connections that close without a request.
	Trigger net.Listener

	root net.Listener
	mux  cmux.CMux
}

// Split multiplexes ln by the first bytes of each connection. Matching is
// ordered: triggers first, then gRPC, then HTTP/1.x. A connection is a
// trigger as soon as its first read cannot begin an HTTP request line or the
// HTTP/2 preface, so a client that writes one byte and keeps the connection
// open is routed immediately and each of its reads still counts once.
// Connections that close without sending anything also go to Trigger.
// Call Serve to start routing.
func Split(ln net.Listener) *Channels {
	m := cmux.New(ln)
	trig := m.Match(matchTrigger)
	// grpc-go clients wait for the server SETTINGS frame before sending
	// headers, so the matcher must write it.
	rpc := m.MatchWithWriters(cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"))
	httpL := m.Match(cmux.HTTP1Fast())
	return &Channels{RPC: rpc, HTTP: httpL, Trigger: trig, root: ln, mux: m}
}

// requestStarts are the openings of the protocols served besides triggers:
// the methods cmux.HTTP1Fast accepts and the HTTP/2 client preface.
var requestStarts = [][]byte{
	[]byte("GET "), []byte("POST "), []byte("PUT "), []byte("DELETE "),
	[]byte("HEAD "), []byte("OPTIONS "), []byte("TRACE "), []byte("CONNECT "),
	[]byte("PRI "),
}

// matchTrigger reports whether a connection carries trigger bytes. It reads
// with the same chunk size as the trigger reader and only asks for more
// while the bytes seen so far could still open a request.
func matchTrigger(r io.Reader) bool {
	var seen []byte
	buf := make([]byte, readChunk)
	for {
		n, err := r.Read(buf)
		seen = append(seen, buf[:n]...)
		if opensRequest(seen) {
			return false
		}
		if n > 0 && !mayOpenRequest(seen) {
			return true
		}
		if err != nil {
			// closed before deciding: a liveness check, or a short trigger
			return true
		}
	}
}

func opensRequest(b []byte) bool {
	for _, p := range requestStarts {
		if bytes.HasPrefix(b, p) {
			return true
		}
	}
	return false
}

func mayOpenRequest(b []byte) bool {
	for _, p := range requestStarts {
		if bytes.HasPrefix(p, b) {
			return true
		}
	}
	return false
}

// Serve routes connections until the root listener is closed. It returns nil
// on a clean Close.
func (c *Channels) Serve() error {
	if err := c.mux.Serve(); err != nil && !IsClosed(err) {
		return err
	}
	return nil
}

// Close stops routing and closes the root listener, which unlinks the socket
// file.
func (c *Channels) Close() error {
	c.mux.Close()
	if err := c.root.Close(); err != nil && !IsClosed(err) {
		return err
	}
	return nil
}

// IsClosed reports whether err comes from a listener that was shut down.
func IsClosed(err error) bool {
	return errors.Is(err, net.ErrClosed) ||
		errors.Is(err, cmux.ErrListenerClosed) ||
		errors.Is(err, cmux.ErrServerClosed)
}
