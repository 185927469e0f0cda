package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/ledd/internal/bridge"
	"github.com/roach88/ledd/internal/config"
	"github.com/roach88/ledd/internal/controller"
	"github.com/roach88/ledd/internal/gpio"
	"github.com/roach88/ledd/internal/journal"
	"github.com/roach88/ledd/internal/sched"
	"github.com/roach88/ledd/internal/transport"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Config string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduler daemon",
		Long: `Run the ledd daemon: the scheduler loop plus every transport the
configuration enables (TCP always, serial and MQTT when configured).

Example:
  ledd serve --config ledd.yaml
  ledd serve --config ledd.yaml --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to YAML config (optional)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg = loaded
	}

	// Output driver: GPIO when configured, log-only otherwise.
	var out sched.Output = sched.LogOutput{}
	if cfg.GPIO != nil {
		g, err := gpio.Open(cfg.GPIO.Chip, cfg.GPIO.Line, cfg.GPIO.ActiveLow)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open gpio output", err)
		}
		defer g.Close()
		out = g
	} else {
		slog.Info("no gpio configured, using log-only output")
	}

	var ctrlOpts []controller.Option
	if cfg.Journal != nil {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer j.Close()
		slog.Info("journal open", "path", cfg.Journal.Path, "session", j.Session())
		ctrlOpts = append(ctrlOpts, controller.WithRecorder(j))
	}

	ctrl := controller.New(sched.NewWallClock(), out, ctrlOpts...)

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	errCh := make(chan error, 4)

	go func() { errCh <- ctrl.Run(ctx) }()

	tcpSrv := transport.NewTCPServer(cfg.Listen, ctrl)
	go func() { errCh <- tcpSrv.Serve(ctx) }()

	if cfg.Serial != nil {
		sp := transport.NewSerialPort(cfg.Serial.Port, cfg.Serial.Baud, ctrl)
		go func() { errCh <- sp.Serve(ctx) }()
	}
	if cfg.MQTT != nil {
		br := bridge.New(cfg.MQTT.Broker, cfg.MQTT.TopicPrefix, cfg.MQTT.ClientID, ctrl)
		go func() { errCh <- br.Run(ctx) }()
	}

	fmt.Fprintln(cmd.OutOrStdout(), "ledd started. Press Ctrl-C to stop.")

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err != nil {
				cancel()
				return WrapExitError(ExitCommandError, "component failed", err)
			}
		}
	}
}
