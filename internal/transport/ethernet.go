package transport

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/beamctl/tpgctl/internal/protocol"
)

// DefaultPort is the TCP port the controller family listens on.
const DefaultPort = 8000

// settleDelay gives slow-replying hardware a moment before each read.
// Correctness never depends on it; reads still wait for the terminator.
const settleDelay = 10 * time.Millisecond

// Ethernet is the TCP transport of the controller's ethernet interface.
type Ethernet struct {
	conn      net.Conn
	reader    *bufio.Reader
	closeOnce sync.Once
	closeErr  error
}

// DialEthernet resolves host and opens a stream to the controller.
// port <= 0 selects DefaultPort.
func DialEthernet(host string, port int, connectTimeout time.Duration) (*Ethernet, error) {
	if port <= 0 {
		port = DefaultPort
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	dialer := net.Dialer{Timeout: connectTimeout}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, addr, err)
	}
	return &Ethernet{conn: conn, reader: bufio.NewReader(conn)}, nil
}

func (e *Ethernet) Write(p []byte) error {
	if _, err := e.conn.Write(p); err != nil {
		return fmt.Errorf("%w: write: %v", ErrIO, err)
	}
	return nil
}

// Read consumes stream bytes up to and including the next CR, waiting
// at most timeout. Unterminated bytes sitting in the stream when the
// deadline passes are returned so the caller can reject the frame.
func (e *Ethernet) Read(timeout time.Duration) ([]byte, error) {
	time.Sleep(settleDelay)
	if err := e.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("%w: set deadline: %v", ErrIO, err)
	}
	data, err := e.reader.ReadBytes(protocol.CR)
	if err != nil {
		if len(data) > 0 && isTimeout(err) {
			return data, nil
		}
		if isTimeout(err) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		return nil, fmt.Errorf("%w: read: %v", ErrIO, err)
	}
	// Responses end CRLF; take the LF too when it is already buffered
	// so it cannot head the next frame.
	if e.reader.Buffered() > 0 {
		if b, perr := e.reader.Peek(1); perr == nil && b[0] == protocol.LF {
			_, _ = e.reader.Discard(1)
		}
	}
	return data, nil
}

func (e *Ethernet) Close() error {
	e.closeOnce.Do(func() { e.closeErr = e.conn.Close() })
	return e.closeErr
}

func isTimeout(err error) bool {
	nerr, ok := err.(net.Error)
	return ok && nerr.Timeout()
}
