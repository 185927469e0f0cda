package transport_test

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ledd/internal/controller"
	"github.com/roach88/ledd/internal/sched"
	"github.com/roach88/ledd/internal/testutil"
	"github.com/roach88/ledd/internal/transport"
)

func TestTCPServer_RoundTrip(t *testing.T) {
	out := testutil.NewFakeOutput()
	ctrl := controller.New(sched.NewWallClock(), out)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go ctrl.Run(ctx)

	srv := transport.NewTCPServer("127.0.0.1:0", ctrl)
	srvDone := make(chan error, 1)
	go func() { srvDone <- srv.Serve(ctx) }()

	// Wait for the listener to bind.
	var addr net.Addr
	require.Eventually(t, func() bool {
		addr = srv.Addr()
		return addr != nil
	}, time.Second, 5*time.Millisecond)

	conn, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(2*time.Second)))

	_, err = conn.Write([]byte("SET 1\nBLINK 0 10 10\n"))
	require.NoError(t, err)

	scanner := bufio.NewScanner(conn)
	require.True(t, scanner.Scan())
	assert.Equal(t, "OK SET 1", scanner.Text())
	require.True(t, scanner.Scan())
	assert.Equal(t, "ERR BLINK count 1..100", scanner.Text())

	require.Eventually(t, out.On, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-srvDone:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("server did not stop")
	}
}

func TestTCPServer_MultipleClientsSeeReplies(t *testing.T) {
	ctrl := controller.New(sched.NewWallClock(), testutil.NewFakeOutput())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctrl.Run(ctx)

	srv := transport.NewTCPServer("127.0.0.1:0", ctrl)
	go srv.Serve(ctx)

	var addr net.Addr
	require.Eventually(t, func() bool {
		addr = srv.Addr()
		return addr != nil
	}, time.Second, 5*time.Millisecond)

	a, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)
	defer a.Close()
	b, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)
	defer b.Close()
	require.NoError(t, a.SetDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, b.SetDeadline(time.Now().Add(2*time.Second)))

	// Give both pumps time to attach their sinks before sending.
	time.Sleep(50 * time.Millisecond)

	_, err = a.Write([]byte("SET 1\n"))
	require.NoError(t, err)

	for name, conn := range map[string]net.Conn{"sender": a, "observer": b} {
		scanner := bufio.NewScanner(conn)
		require.True(t, scanner.Scan(), name)
		assert.Equal(t, "OK SET 1", scanner.Text(), name)
	}
}
