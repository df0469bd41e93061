package zhttp

import (
	"github.com/zgate/zhttp/matchstr"
)

// chunkSafetyMargin is the number of trailing bytes the chunk-size scan
// never walks into: a chunk-size line always ends with CRLF.
const chunkSafetyMargin = 2

// decodeHeadersAndBody parses the header block starting at the LF that
// ends the first line, then the body. Fields are appended to h; the body is
// copied into a.
//
// The body runs to the end of the buffer unless the message is chunked;
// Content-Length is not consulted.
func decodeHeadersAndBody(c *cursor, off int, h *HeaderList, a *arena) ([]byte, error) {
	n := c.len()
	i := off
	chunked := false

	for i < n-1 && c.is(i, '\n') {
		i++
		if c.is(i, '\r') && i < n-1 && c.is(i+1, '\n') {
			i++
			break
		}
		if c.is(i, '\n') {
			break
		}

		po := i
		for !c.is(i, ':') {
			if i >= n {
				return nil, malformed(i, "cannot find colon in header line")
			}
			i++
		}
		name := c.str(po, i)
		i++

		for i < n-1 && c.is(i, ' ') {
			i++
		}
		po = i
		for i < n-1 && !c.is(i, '\r') && !c.is(i, '\n') {
			i++
		}
		value := c.str(po, i)

		if matchstr.Match(name, strTransferEncoding) && matchstr.Match(value, strChunked) {
			chunked = true
		}
		h.Add(name, value)

		if i < n-1 && c.is(i, '\r') {
			i++
		}
	}
	if !c.is(i, '\n') {
		return nil, malformed(i, "cannot find end of header block")
	}
	i++

	if chunked {
		return decodeChunkedBody(c, i, a)
	}
	if i >= n {
		return nil, nil
	}
	return a.copy(c.slice(i, n)), nil
}

// decodeChunkedBody decodes chunked transfer-coding starting at off.
// Trailer fields after the terminal chunk are ignored.
func decodeChunkedBody(c *cursor, off int, a *arena) ([]byte, error) {
	n := c.len()
	i := off

	// Decoded content is never longer than its encoding.
	dst := a.alloc(n - i)

	for {
		chunkSize := 0
		for ; i < n-chunkSafetyMargin; i++ {
			ch, _ := c.at(i)
			k := hexbyte2int(ch)
			if k < 0 {
				break
			}
			var ok bool
			if chunkSize, ok = hexAccumulate(chunkSize, k); !ok {
				return nil, malformed(i, "too big chunk size")
			}
		}

		// Skip chunk extensions up to CRLF.
		for !c.isCRLF(i) {
			if i >= n-chunkSafetyMargin {
				return nil, malformed(i, "cannot find CRLF after chunk size")
			}
			i++
		}
		i += len(strCRLF)

		if chunkSize == 0 {
			break
		}
		if chunkSize > n-i {
			return nil, malformed(i, "chunk exceeds buffer")
		}
		dst = append(dst, c.slice(i, i+chunkSize)...)
		i += chunkSize + len(strCRLF)
	}

	if len(dst) == 0 {
		return nil, nil
	}
	return dst, nil
}

// appendHeadersAndBody appends the header block and body to dst.
//
// A Content-Length field carrying len(body) is written first unless h
// already has one.
func appendHeadersAndBody(dst []byte, h *HeaderList, body []byte) []byte {
	if !h.Has(strContentLength) {
		dst = append(dst, strContentLength...)
		dst = append(dst, strColonSpace...)
		dst = AppendUint(dst, len(body))
		dst = append(dst, strCRLF...)
	}
	dst = h.AppendBytes(dst)
	dst = append(dst, strCRLF...)
	return append(dst, body...)
}
