package transport

import (
	"context"
	"fmt"
	"log/slog"

	"go.bug.st/serial"

	"github.com/roach88/ledd/internal/controller"
)

// SerialPort bridges a serial device to the controller, mirroring the
// bench setup where a host drives the device over USB serial.
type SerialPort struct {
	name string
	baud int
	ctrl *controller.Controller
}

// NewSerialPort creates a serial transport for the named device.
func NewSerialPort(name string, baud int, ctrl *controller.Controller) *SerialPort {
	return &SerialPort{name: name, baud: baud, ctrl: ctrl}
}

// Serve opens the port and pumps it until ctx is cancelled or the device
// disappears.
func (s *SerialPort) Serve(ctx context.Context) error {
	port, err := serial.Open(s.name, &serial.Mode{BaudRate: s.baud})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", s.name, err)
	}
	slog.Info("serial transport open", "port", s.name, "baud", s.baud)
	pump(ctx, port, s.ctrl)
	return nil
}
