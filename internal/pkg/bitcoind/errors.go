package bitcoind

import (
	"errors"
	"fmt"
	"strings"
)

// TransportError indicates the request never produced a decodable response:
// a network failure, a malformed URL, or a non-JSON HTTP error page.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bitcoind: %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError indicates the node answered with a non-null error field.
// Message carries the node's raw error text verbatim; the pruned-data
// condition is only signalled through that text.
type ProtocolError struct {
	Method  string
	Code    int
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("bitcoind: %s: node error %d: %s", e.Method, e.Code, e.Message)
}

// DecodeError indicates the node answered but the body or the result payload
// could not be decoded into the expected shape.
type DecodeError struct {
	Method string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bitcoind: %s: decode response: %v", e.Method, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// prunedBlockMessage is the text bitcoind puts in the error field when block
// data below the prune height is requested.
const prunedBlockMessage = "Block not available (pruned data)"

// IsPrunedBlock reports whether err is the node telling us the requested
// block's data has been pruned away. bitcoind exposes no structured signal
// for this, so the match is against the raw message text.
func IsPrunedBlock(err error) bool {
	var perr *ProtocolError
	return errors.As(err, &perr) && strings.Contains(perr.Message, prunedBlockMessage)
}
