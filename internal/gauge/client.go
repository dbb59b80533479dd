package gauge

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beamctl/tpgctl/internal/observability"
	"github.com/beamctl/tpgctl/internal/protocol"
	"github.com/beamctl/tpgctl/internal/transport"
)

// DefaultReadTimeout matches the controller's reply window.
const DefaultReadTimeout = 5 * time.Second

// Client drives the ENQ/ACK/NAK handshake for one controller
// connection. mu serializes whole Send calls, the nested error
// retrieval included: the protocol has no request identifiers, so
// interleaved exchanges cannot be told apart.
type Client struct {
	tr          transport.Transport
	readTimeout time.Duration
	mu          sync.Mutex
}

func NewClient(tr transport.Transport, readTimeout time.Duration) *Client {
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	return &Client{tr: tr, readTimeout: readTimeout}
}

// Send writes one command frame and completes its handshake. On ACK the
// pending data is enquired and returned tokenized; on NAK the error
// retrieval sub-exchange runs and its decoded failure is returned in
// place of a response. Nothing is retried here.
func (c *Client) Send(cmd protocol.Command) (protocol.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	resp, err := c.exchange(cmd)
	observability.RecordCommand(cmd.Mnemonic(), metricResult(err), time.Since(start))
	return resp, err
}

func (c *Client) exchange(cmd protocol.Command) (protocol.Response, error) {
	if err := c.tr.Write(cmd.Encode()); err != nil {
		return nil, err
	}
	ack, err := c.receive()
	if err != nil {
		return nil, err
	}
	switch ack.First() {
	case string(protocol.ACK):
		return c.enquire()
	case string(protocol.NAK):
		return nil, c.retrieveError(cmd)
	default:
		return nil, fmt.Errorf("%w: %q", protocol.ErrViolation, ack.First())
	}
}

func (c *Client) receive() (protocol.Response, error) {
	raw, err := c.tr.Read(c.readTimeout)
	if err != nil {
		return nil, err
	}
	return protocol.Tokenize(raw)
}

// enquire requests the data the controller holds after an ACK.
func (c *Client) enquire() (protocol.Response, error) {
	if err := c.tr.Write([]byte{protocol.ENQ}); err != nil {
		return nil, err
	}
	return c.receive()
}

// retrieveError runs the two-phase error disclosure after a NAK. The
// controller never puts detail in the NAK frame itself: ERR is written
// bare, without the usual CR terminator, its acknowledgement read, and
// the error word enquired like ordinary pending data. Never returns a
// normal response.
func (c *Client) retrieveError(cmd protocol.Command) error {
	if err := c.tr.Write([]byte(protocol.ErrQuery)); err != nil {
		return err
	}
	ack, err := c.receive()
	if err != nil {
		return err
	}
	if ack.First() != string(protocol.ACK) {
		return fmt.Errorf("%w: error query not acknowledged, got %q", protocol.ErrViolation, ack.First())
	}
	word, err := c.enquire()
	if err != nil {
		return err
	}
	return protocol.DecodeErrorWord(word.First(), cmd.String())
}

// Close releases the underlying transport. Idempotent.
func (c *Client) Close() error {
	return c.tr.Close()
}

func metricResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, protocol.ErrSyntax),
		errors.Is(err, protocol.ErrInadmissible),
		errors.Is(err, protocol.ErrNoHardware),
		errors.Is(err, protocol.ErrController),
		errors.Is(err, protocol.ErrUnknownWord):
		return "controller_error"
	case errors.Is(err, transport.ErrTimeout):
		return "timeout"
	case errors.Is(err, protocol.ErrFraming), errors.Is(err, protocol.ErrViolation):
		return "protocol_error"
	default:
		return "io_error"
	}
}
