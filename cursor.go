package zhttp

// cursor walks a caller-owned input buffer.
//
// Every accessor checks the offset against the declared length before
// touching the buffer, so malformed input can never cause a read past len(b).
type cursor struct {
	b []byte
}

// len returns the declared buffer length.
func (c *cursor) len() int {
	return len(c.b)
}

// at returns the byte at i and whether i is inside the buffer.
func (c *cursor) at(i int) (byte, bool) {
	if i < 0 || i >= len(c.b) {
		return 0, false
	}
	return c.b[i], true
}

// is reports whether the byte at i exists and equals ch.
func (c *cursor) is(i int, ch byte) bool {
	b, ok := c.at(i)
	return ok && b == ch
}

// isCRLF reports whether a complete CRLF pair starts at i.
func (c *cursor) isCRLF(i int) bool {
	return c.is(i, '\r') && c.is(i+1, '\n')
}

// hasPrefix reports whether the bytes at i start with p.
func (c *cursor) hasPrefix(i int, p []byte) bool {
	if i < 0 || i+len(p) > len(c.b) {
		return false
	}
	return string(c.b[i:i+len(p)]) == string(p)
}

// slice returns b[from:to] clamped to the buffer bounds.
func (c *cursor) slice(from, to int) []byte {
	if to > len(c.b) {
		to = len(c.b)
	}
	if from < 0 {
		from = 0
	}
	if from >= to {
		return nil
	}
	return c.b[from:to]
}

// str returns an owned copy of b[from:to].
func (c *cursor) str(from, to int) string {
	return string(c.slice(from, to))
}
