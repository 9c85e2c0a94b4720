package ipc

import (
	"errors"
	"io"
	"log/slog"
	"net"
)

// readChunk is the size of each read on a trigger connection.
const readChunk = 8

// ServeTriggers accepts connections on ln one at a time and sends one value
// on out for every non-empty read. A connection is read until the peer
// closes it (or a read fails), then the next one is accepted. Sends block,
// so no trigger is lost. ServeTriggers returns nil once ln is closed.
func ServeTriggers(ln net.Listener, out chan<- struct{}) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if IsClosed(err) {
				return nil
			}
			return err
		}
		n := readTriggers(conn, out)
		slog.Debug("trigger connection closed", "triggers", n)
	}
}

func readTriggers(conn net.Conn, out chan<- struct{}) int {
	defer conn.Close()
	buf := make([]byte, readChunk)
	count := 0
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			count++
			out <- struct{}{}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				slog.Debug("trigger read failed", "err", err)
			}
			return count
		}
	}
}
