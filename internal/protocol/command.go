package protocol

import (
	"errors"
	"strings"
)

// Control bytes of the controller line protocol.
const (
	ENQ byte = 0x05
	ACK byte = 0x06
	NAK byte = 0x15

	CR byte = 0x0D
	LF byte = 0x0A
)

// ErrQuery is the error-request token sent after a NAK. The controller
// accepts it without the trailing CR ordinary commands carry.
const ErrQuery = "ERR"

var ErrEmptyMnemonic = errors.New("protocol: empty mnemonic")

// Command is one controller request: a mnemonic plus its ordered
// arguments. Immutable once constructed.
type Command struct {
	mnemonic string
	args     []string
}

func NewCommand(mnemonic string, args ...string) (Command, error) {
	if strings.TrimSpace(mnemonic) == "" {
		return Command{}, ErrEmptyMnemonic
	}
	cp := make([]string, len(args))
	copy(cp, args)
	return Command{mnemonic: mnemonic, args: cp}, nil
}

func (c Command) Mnemonic() string { return c.mnemonic }

func (c Command) Args() []string {
	out := make([]string, len(c.args))
	copy(out, c.args)
	return out
}

// Encode serializes the command to its request frame:
// mnemonic[,arg1,arg2,...]<CR>.
func (c Command) Encode() []byte {
	var b strings.Builder
	b.WriteString(c.mnemonic)
	for _, arg := range c.args {
		b.WriteByte(',')
		b.WriteString(arg)
	}
	b.WriteByte(CR)
	return []byte(b.String())
}

// String is the request frame without its terminator, the form carried
// inside decoded controller failures.
func (c Command) String() string {
	if len(c.args) == 0 {
		return c.mnemonic
	}
	return c.mnemonic + "," + strings.Join(c.args, ",")
}
