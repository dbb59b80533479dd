// Package transport owns the byte stream between client and controller:
// connect, send bytes, receive bytes with a bounded wait, close.
package transport

import (
	"errors"
	"time"
)

var (
	// ErrConnect reports a failed connection attempt. Fatal to the
	// owning session; never retried at this layer.
	ErrConnect = errors.New("transport: connect failed")
	// ErrIO reports a hard read or write failure on an established
	// stream.
	ErrIO = errors.New("transport: i/o failure")
	// ErrTimeout reports that no frame terminator arrived within the
	// read deadline. Surfaced as-is; the caller decides whether to
	// abandon or resynchronize the connection.
	ErrTimeout = errors.New("transport: read timed out")
	// ErrSerialUnsupported marks the serial interface, which is not
	// implemented yet.
	ErrSerialUnsupported = errors.New("transport: serial interface not implemented")
)

// Transport owns one bidirectional byte stream to a controller.
// Implementations are not safe for concurrent use; callers serialize
// whole command exchanges.
type Transport interface {
	Write(p []byte) error
	// Read blocks until a CR-terminated frame is buffered or the
	// timeout elapses. Partial unterminated data present at the
	// deadline is returned for the caller to reject.
	Read(timeout time.Duration) ([]byte, error)
	// Close releases the stream. Idempotent.
	Close() error
}
