package zhttp

import (
	"strconv"
)

const (
	// maxMethodLen bounds the scan for the space ending the request method.
	maxMethodLen = 30

	// lineSafetyMargin is the number of trailing bytes a request line scan
	// never walks into: the shortest valid tail is "HTTP/".
	lineSafetyMargin = 5
)

// decodeRequestLine parses "<method> <path> HTTP/<version>" at the start of
// c and returns the offset of the LF ending the line.
func decodeRequestLine(c *cursor) (method, path, version string, off int, err error) {
	n := c.len()

	i := 0
	for !c.is(i, ' ') {
		if i >= n-lineSafetyMargin || i > maxMethodLen {
			return "", "", "", 0, malformed(i, "cannot find whitespace after request method")
		}
		i++
	}
	method = c.str(0, i)

	po := i + 1
	for i = po; !c.is(i, ' '); i++ {
		if i >= n-lineSafetyMargin {
			return "", "", "", 0, malformed(i, "cannot find whitespace after request path")
		}
	}
	path = c.str(po, i)

	i++
	if i > n-lineSafetyMargin || !c.hasPrefix(i, strHTTP) {
		return "", "", "", 0, malformed(i, "missing HTTP/ in request line")
	}
	i += len(strHTTP)

	po = i
	for i < n && !c.is(i, '\r') && !c.is(i, '\n') {
		i++
	}
	version = c.str(po, i)

	if i < n-1 && c.is(i, '\r') {
		i++
	}
	if !c.is(i, '\n') {
		return "", "", "", 0, malformed(i, "cannot find end of request line")
	}
	return method, path, version, i, nil
}

// decodeStatusLine parses "HTTP/<version> <code> <reason>" at the start of
// c and returns the offset where header parsing continues.
func decodeStatusLine(c *cursor) (version string, statusCode int, off int, err error) {
	n := c.len()
	if !c.hasPrefix(0, strHTTP) {
		return "", 0, 0, malformed(0, "missing HTTP/ in status line")
	}

	po := len(strHTTP)
	i := po
	for i < n-2 && !c.is(i, ' ') && !c.is(i, '\r') && !c.is(i, '\n') {
		i++
	}
	version = c.str(po, i)
	if !c.is(i, ' ') {
		return "", 0, 0, malformed(i, "cannot find whitespace after response version")
	}
	i++

	for i < n-2 {
		ch, _ := c.at(i)
		if !isDigit(ch) {
			break
		}
		if statusCode > maxStatusCode {
			return "", 0, 0, malformed(i, "too long status code")
		}
		statusCode = statusCode*10 + int(ch-'0')
		i++
	}

	for i < n-1 && !c.is(i, '\n') {
		i++
	}
	return version, statusCode, i, nil
}

// maxStatusCode keeps the accumulated status code far from int overflow.
// A code with another digit after exceeding it is malformed.
const maxStatusCode = 1 << 24

// appendRequestLine appends "<method> <path> HTTP/<version>\r\n" to dst.
func appendRequestLine(dst []byte, method, path, version string) []byte {
	dst = append(dst, method...)
	dst = append(dst, strSpace...)
	dst = append(dst, path...)
	dst = append(dst, strSpace...)
	dst = append(dst, strHTTP...)
	dst = append(dst, version...)
	return append(dst, strCRLF...)
}

// appendStatusLine appends "HTTP/<version> <code> <reason>\r\n" to dst.
func appendStatusLine(dst []byte, version string, statusCode int) []byte {
	dst = append(dst, strHTTP...)
	dst = append(dst, version...)
	dst = append(dst, strSpace...)
	if statusCode < 0 {
		dst = strconv.AppendInt(dst, int64(statusCode), 10)
	} else {
		dst = AppendUint(dst, statusCode)
	}
	dst = append(dst, strSpace...)
	dst = append(dst, StatusMessage(statusCode)...)
	return append(dst, strCRLF...)
}
