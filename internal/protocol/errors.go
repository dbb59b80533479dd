package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrFraming reports a received payload without a CR terminator.
	ErrFraming = errors.New("protocol: unterminated frame")
	// ErrViolation reports a handshake frame whose first field is
	// neither ACK nor NAK.
	ErrViolation = errors.New("protocol: unexpected handshake byte")

	// Controller failures decoded from the 4-bit error word.
	ErrSyntax       = errors.New("protocol: syntax error in command")
	ErrInadmissible = errors.New("protocol: inadmissible parameter was left out")
	ErrNoHardware   = errors.New("protocol: no hardware")
	ErrController   = errors.New("protocol: controller error, check display")
	ErrUnknownWord  = errors.New("protocol: error word unknown or incomplete transmission")
)

// DecodeErrorWord maps the controller's 4-character error word to a
// typed failure. Exactly one bit is expected set; anything else,
// multi-bit words included, decodes as ErrUnknownWord carrying the raw
// word. Syntax and parameter failures carry the rejected command.
func DecodeErrorWord(word, command string) error {
	switch word {
	case "0001":
		return fmt.Errorf("%w: %s", ErrSyntax, command)
	case "0010":
		return fmt.Errorf("%w: %s", ErrInadmissible, command)
	case "0100":
		return ErrNoHardware
	case "1000":
		return ErrController
	default:
		return fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
}
