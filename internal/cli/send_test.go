package cli

import (
	"bufio"
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDaemon accepts one connection and answers each received line with
// the configured replies, after an optional READY banner.
func fakeDaemon(t *testing.T, banner bool, replies ...string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		if banner {
			conn.Write([]byte("READY\n"))
		}
		scanner := bufio.NewScanner(conn)
		for _, reply := range replies {
			if !scanner.Scan() {
				return
			}
			conn.Write([]byte(reply + "\n"))
		}
	}()
	return ln.Addr().String()
}

func runSendCmd(t *testing.T, addr, line string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"send", line, "--addr", addr})
	err := cmd.Execute()
	return out.String(), err
}

func TestSend_PrintsOKReply(t *testing.T) {
	addr := fakeDaemon(t, false, "OK SET 1")
	out, err := runSendCmd(t, addr, "SET 1")
	require.NoError(t, err)
	assert.Equal(t, "OK SET 1\n", out)
}

func TestSend_SkipsReadyBanner(t *testing.T) {
	addr := fakeDaemon(t, true, "OK BLINK start")
	out, err := runSendCmd(t, addr, "BLINK 3 100 50")
	require.NoError(t, err)
	assert.Equal(t, "OK BLINK start\n", out)
}

func TestSend_ErrReplyExitsNonzero(t *testing.T) {
	addr := fakeDaemon(t, false, "ERR BLINK count 1..100")
	out, err := runSendCmd(t, addr, "BLINK 0 100 100")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "ERR BLINK count 1..100")
}

func TestSend_ConnectFailure(t *testing.T) {
	// Port from a closed listener: nothing is accepting.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = runSendCmd(t, addr, "SET 1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
