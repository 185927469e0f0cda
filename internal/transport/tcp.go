package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/roach88/ledd/internal/controller"
)

// TCPServer accepts line-protocol connections and bridges each to the
// controller. Multiple clients may be connected at once; every client
// sees every reply and notice.
type TCPServer struct {
	addr string
	ctrl *controller.Controller

	mu sync.Mutex
	ln net.Listener
}

// NewTCPServer creates a server for the given listen address.
func NewTCPServer(addr string, ctrl *controller.Controller) *TCPServer {
	return &TCPServer{addr: addr, ctrl: ctrl}
}

// Addr returns the bound address once Serve has started listening.
func (s *TCPServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve listens and accepts until ctx is cancelled.
func (s *TCPServer) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	slog.Info("tcp transport listening", "addr", ln.Addr())

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept failed: %w", err)
		}
		slog.Debug("client connected", "remote", conn.RemoteAddr())
		go func() {
			pump(ctx, conn, s.ctrl)
			slog.Debug("client disconnected", "remote", conn.RemoteAddr())
		}()
	}
}
