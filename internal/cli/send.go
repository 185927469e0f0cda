package cli

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// SendOptions holds flags for the send command.
type SendOptions struct {
	*RootOptions
	Addr    string
	Timeout time.Duration
}

// NewSendCommand creates the send command.
func NewSendCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SendOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "send <command line>",
		Short: "Send one command to a running daemon",
		Long: `Send one command line to a running ledd daemon over TCP and print
the reply. Exits nonzero when the device answers ERR.

Example:
  ledd send "BLINK 3 100 50"
  ledd send "SET 1" --addr 192.168.1.40:7600`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "localhost:7600", "daemon TCP address")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 2*time.Second, "reply timeout")

	return cmd
}

func runSend(opts *SendOptions, line string, cmd *cobra.Command) error {
	conn, err := net.DialTimeout("tcp", opts.Addr, opts.Timeout)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to connect", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(opts.Timeout))

	if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
		return WrapExitError(ExitCommandError, "failed to send", err)
	}

	// The daemon broadcasts READY on startup and notices at any time;
	// the reply to our line is the first OK/ERR after we sent it.
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		reply := scanner.Text()
		if !strings.HasPrefix(reply, "OK ") && !strings.HasPrefix(reply, "ERR ") {
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		if strings.HasPrefix(reply, "ERR ") {
			return NewExitError(ExitFailure, "command rejected")
		}
		return nil
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read reply", err)
	}
	return NewExitError(ExitCommandError, "connection closed before reply")
}
