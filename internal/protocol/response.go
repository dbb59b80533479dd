package protocol

import (
	"bytes"
	"fmt"
	"strings"
)

// Response is the ordered field list of one controller frame. Field
// order is positional: field 0 is conventionally a status or value,
// later fields are auxiliary. Semantic interpretation belongs to the
// caller.
type Response []string

// First returns field 0, or the empty string for an empty response.
func (r Response) First() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Tokenize splits one received frame into fields. Splitting is purely
// syntactic: cut at the first CR, then split on commas. The same rule
// applies to data frames and error-word frames alike. A payload without
// a CR terminator is malformed.
func Tokenize(raw []byte) (Response, error) {
	// Tolerate a stale LF left over from the previous frame's CRLF tail.
	raw = bytes.TrimLeft(raw, "\n")
	i := bytes.IndexByte(raw, CR)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrFraming, raw)
	}
	return Response(strings.Split(string(raw[:i]), ",")), nil
}
