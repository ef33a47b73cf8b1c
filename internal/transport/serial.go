// Package transport provides byte transports for physical printers. Each
// transport satisfies the escpos.Transport contract: a blocking write plus
// a flush called between raster stripes.
package transport

import (
	"fmt"

	"github.com/tarm/serial"
)

// Serial is a serial-port transport.
type Serial struct {
	port *serial.Port
}

// OpenSerial opens the named serial port at the given baud rate.
func OpenSerial(portName string, baud int) (*Serial, error) {
	port, err := serial.OpenPort(&serial.Config{Name: portName, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}
	return &Serial{port: port}, nil
}

func (s *Serial) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

// Flush is a no-op: serial writes block until the bytes are handed to the
// driver, and the port's own Flush discards buffers rather than draining
// them.
func (s *Serial) Flush() error { return nil }

// Close closes the port.
func (s *Serial) Close() error { return s.port.Close() }
