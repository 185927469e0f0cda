// Package transport attaches byte streams to the controller.
//
// A transport is anything that delivers raw bytes and can carry reply
// lines back: a TCP connection, a serial port. Transports never parse;
// they append bytes to the controller inbox and write whatever lines the
// controller broadcasts.
package transport

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/roach88/ledd/internal/controller"
)

// pump bridges one bidirectional stream to the controller: received bytes
// are fed to the inbox, broadcast lines are written back with a '\n'
// terminator. Returns when the stream closes or ctx is cancelled.
func pump(ctx context.Context, stream io.ReadWriteCloser, ctrl *controller.Controller) {
	defer stream.Close()

	var writeMu sync.Mutex
	detach := ctrl.AttachSink(func(line string) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if _, err := stream.Write([]byte(line + "\n")); err != nil {
			slog.Warn("transport write failed", "error", err)
		}
	})
	defer detach()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			stream.Close()
		case <-done:
		}
	}()

	buf := make([]byte, 512)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			ctrl.Feed(buf[:n])
		}
		if err != nil {
			if err != io.EOF && ctx.Err() == nil {
				slog.Warn("transport read failed", "error", err)
			}
			return
		}
	}
}
