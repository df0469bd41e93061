package zhttp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/zgate/zhttp/matchstr"
)

// MessageLength returns the length of the first complete HTTP message
// at the start of buf.
//
// The message ends after Content-Length body bytes, after the terminal
// chunk of a chunked body, or right after the header block when neither
// is present. ErrNeedMore is returned while buf holds only part of
// a message.
func MessageLength(buf []byte) (int, error) {
	n, err := headerBlockLength(buf)
	if err != nil {
		return 0, err
	}
	contentLength, chunked, err := parseFraming(buf[:n])
	if err != nil {
		return 0, err
	}
	if chunked {
		m, err := chunkedLength(buf[n:])
		if err != nil {
			return 0, err
		}
		return n + m, nil
	}
	if contentLength > len(buf)-n {
		return 0, ErrNeedMore
	}
	return n + contentLength, nil
}

// headerBlockLength returns the length of the first line plus the header
// block, including the terminating blank line.
func headerBlockLength(buf []byte) (int, error) {
	i := bytes.IndexByte(buf, '\n')
	if i < 0 {
		return 0, ErrNeedMore
	}
	for {
		b := buf[i+1:]
		if len(b) > 0 && b[0] == '\n' {
			return i + 2, nil
		}
		if len(b) > 1 && b[0] == '\r' && b[1] == '\n' {
			return i + 3, nil
		}
		m := bytes.IndexByte(b, '\n')
		if m < 0 {
			return 0, ErrNeedMore
		}
		i += m + 1
	}
}

// parseFraming looks for Content-Length and chunked Transfer-Encoding in
// a complete header block.
func parseFraming(block []byte) (contentLength int, chunked bool, err error) {
	b := block
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[i+1:]
	}
	for len(b) > 0 {
		var line []byte
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line, b = b[:i], b[i+1:]
		} else {
			line, b = b, nil
		}
		line = bytes.TrimSuffix(line, strCRLF[:1])
		name, value, ok := bytes.Cut(line, []byte{':'})
		if !ok {
			continue
		}
		value = bytes.TrimLeft(value, " ")
		switch {
		case matchstr.Match(b2s(name), strContentLength):
			if contentLength, err = ParseUint(value); err != nil {
				return 0, false, fmt.Errorf("%w: cannot parse Content-Length: %s", ErrMalformed, err)
			}
		case matchstr.Match(b2s(name), strTransferEncoding):
			chunked = matchstr.Match(b2s(value), strChunked)
		}
	}
	return contentLength, chunked, nil
}

// chunkedLength returns the length of the chunked body at the start of b,
// trailer and final blank line included.
func chunkedLength(b []byte) (int, error) {
	n := 0
	for {
		line, m, err := nextLine(b[n:])
		if err != nil {
			return 0, err
		}
		size, _, err := parseChunkSizeLine(line)
		if err != nil {
			return 0, err
		}
		n += m
		if size == 0 {
			break
		}
		if size > len(b)-n-len(strCRLF) {
			return 0, ErrNeedMore
		}
		n += size + len(strCRLF)
	}
	for {
		line, m, err := nextLine(b[n:])
		if err != nil {
			return 0, err
		}
		n += m
		if len(line) == 0 {
			return n, nil
		}
	}
}

// nextLine returns the line at the start of b without its line ending and
// the number of bytes it occupies.
func nextLine(b []byte) ([]byte, int, error) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return nil, 0, ErrNeedMore
	}
	return bytes.TrimSuffix(b[:i], strCRLF[:1]), i + 1, nil
}

// parseChunkSizeLine parses the hex size at the start of a chunk-size line.
func parseChunkSizeLine(line []byte) (int, int, error) {
	size := 0
	i := 0
	for ; i < len(line); i++ {
		k := hexbyte2int(line[i])
		if k < 0 {
			break
		}
		var ok bool
		if size, ok = hexAccumulate(size, k); !ok {
			return 0, i, fmt.Errorf("%w: too big chunk size", ErrMalformed)
		}
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("%w: cannot find chunk size", ErrMalformed)
	}
	return size, i, nil
}

// maxReadStep bounds a single body read in ReadMessage.
const maxReadStep = 64 * 1024

// ReadMessage reads exactly one complete HTTP message from r and returns
// its raw bytes, ready for Codec.Decode.
//
// Bytes following the message are left in r. ErrMessageTooLarge is
// returned once the message would exceed maxSize bytes; zero maxSize means
// no limit.
func ReadMessage(r *bufio.Reader, maxSize int) ([]byte, error) {
	var dst []byte
	var err error

	appendLine := func() ([]byte, error) {
		start := len(dst)
		for {
			line, err := r.ReadSlice('\n')
			dst = append(dst, line...)
			if maxSize > 0 && len(dst) > maxSize {
				return nil, ErrMessageTooLarge
			}
			if err == nil {
				return bytes.TrimSuffix(bytes.TrimSuffix(dst[start:], strCRLF[1:]), strCRLF[:1]), nil
			}
			if err != bufio.ErrBufferFull {
				if err == io.EOF && len(dst) > 0 {
					err = io.ErrUnexpectedEOF
				}
				return nil, err
			}
		}
	}
	appendN := func(n int) error {
		if n < 0 {
			return fmt.Errorf("%w: negative body length", ErrMalformed)
		}
		if maxSize > 0 && n > maxSize-len(dst) {
			return ErrMessageTooLarge
		}
		// Grow with the data actually read, not with the declared length.
		for n > 0 {
			m := min(n, maxReadStep)
			start := len(dst)
			dst = append(dst, make([]byte, m)...)
			if _, err := io.ReadFull(r, dst[start:]); err != nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				return err
			}
			n -= m
		}
		return nil
	}

	// First line, then header fields up to the blank line.
	if _, err = appendLine(); err != nil {
		return nil, err
	}
	for {
		line, err := appendLine()
		if err != nil {
			return nil, err
		}
		if len(line) == 0 {
			break
		}
	}

	contentLength, chunked, err := parseFraming(dst)
	if err != nil {
		return nil, err
	}
	if !chunked {
		if err = appendN(contentLength); err != nil {
			return nil, err
		}
		return dst, nil
	}

	for {
		line, err := appendLine()
		if err != nil {
			return nil, err
		}
		size, _, err := parseChunkSizeLine(line)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			break
		}
		if size > math.MaxInt-len(strCRLF) {
			return nil, fmt.Errorf("%w: too big chunk size", ErrMalformed)
		}
		if err = appendN(size + len(strCRLF)); err != nil {
			return nil, err
		}
	}
	for {
		line, err := appendLine()
		if err != nil {
			return nil, err
		}
		if len(line) == 0 {
			return dst, nil
		}
	}
}
