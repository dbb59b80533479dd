package transport

import "time"

// Serial is the RS-232/RS-485 interface of the controller family. Not
// implemented yet; the type holds the transport seat so sessions can be
// configured for it before support lands.
type Serial struct{}

// OpenSerial always fails until the serial interface is implemented.
func OpenSerial(device string) (*Serial, error) {
	return nil, ErrSerialUnsupported
}

func (*Serial) Write([]byte) error { return ErrSerialUnsupported }

func (*Serial) Read(time.Duration) ([]byte, error) { return nil, ErrSerialUnsupported }

func (*Serial) Close() error { return nil }
