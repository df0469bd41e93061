package zhttp

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned by every failed decode.
	//
	// Use errors.Is to check for it: returned errors wrap ErrMalformed with
	// the reason and the buffer offset where decoding stopped.
	ErrMalformed = errors.New("malformed HTTP message")

	// ErrNeedMore is returned by MessageLength when the buffer doesn't hold
	// a complete message yet.
	ErrNeedMore = errors.New("need more data: cannot find complete HTTP message")

	// ErrBodyTooLarge is returned if a decompressed or read body exceeds
	// the configured limit.
	ErrBodyTooLarge = errors.New("body size exceeds the given limit")

	// ErrMessageTooLarge is returned by ReadMessage if a message exceeds
	// the given limit.
	ErrMessageTooLarge = errors.New("message size exceeds the given limit")

	// ErrUnsupportedEncoding is returned for a Content-Encoding the codec
	// cannot handle.
	ErrUnsupportedEncoding = errors.New("unsupported content encoding")
)

// malformed builds a decode error. Buffer contents are never included
// in the message, only the offset.
func malformed(off int, reason string) error {
	return fmt.Errorf("%w: %s at offset %d", ErrMalformed, reason, off)
}
