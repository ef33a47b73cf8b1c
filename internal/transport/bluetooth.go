package transport

import (
	"errors"
	"fmt"
	"log/slog"

	"tinygo.org/x/bluetooth"
)

// 16-bit UUIDs of the vendor serial-port service most BLE thermal printers
// expose: 0xFF02 is the write characteristic.
var (
	printerServiceUUID = bluetooth.New16BitUUID(0xFF00)
	printerWriterUUID  = bluetooth.New16BitUUID(0xFF02)
)

// writeChunkSize keeps each BLE write under the characteristic's value
// length limit.
const writeChunkSize = 128

// Bluetooth is a BLE transport writing to the printer's serial-port
// characteristic.
type Bluetooth struct {
	adapter *bluetooth.Adapter
	device  bluetooth.Device
	writer  bluetooth.DeviceCharacteristic
}

// OpenBluetooth scans for a device advertising the given local name,
// connects and resolves the write characteristic.
func OpenBluetooth(name string) (*Bluetooth, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("enable bluetooth: %w", err)
	}

	found := make(chan bluetooth.ScanResult, 1)
	go func() {
		err := adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if result.LocalName() == name {
				slog.Info("found printer",
					"name", result.LocalName(),
					"address", result.Address.String(),
				)
				found <- result
				adapter.StopScan()
			}
		})
		if err != nil {
			slog.Error("bluetooth scan failed", "err", err)
			close(found)
		}
	}()

	result, ok := <-found
	if !ok {
		return nil, errors.New("no matching bluetooth device found")
	}

	device, err := adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", result.Address, err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{printerServiceUUID})
	if err != nil || len(services) == 0 {
		device.Disconnect()
		return nil, fmt.Errorf("discover printer service: %w", err)
	}
	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{printerWriterUUID})
	if err != nil || len(chars) == 0 {
		device.Disconnect()
		return nil, fmt.Errorf("discover write characteristic: %w", err)
	}

	return &Bluetooth{adapter: adapter, device: device, writer: chars[0]}, nil
}

// Write sends the bytes to the write characteristic in chunks small enough
// for a single BLE write each.
func (b *Bluetooth) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		chunk := p[written:min(written+writeChunkSize, len(p))]
		if _, err := b.writer.WriteWithoutResponse(chunk); err != nil {
			return written, fmt.Errorf("ble write at offset %d: %w", written, err)
		}
		written += len(chunk)
	}
	return written, nil
}

// Flush is a no-op: WriteWithoutResponse hands each chunk straight to the
// controller.
func (b *Bluetooth) Flush() error { return nil }

// Close disconnects from the device.
func (b *Bluetooth) Close() error { return b.device.Disconnect() }
