package zhttp

import (
	"errors"
	"fmt"
	"math"
)

const maxIntChars = 18

// AppendUint appends n to dst and returns dst (which may be newly allocated).
func AppendUint(dst []byte, n int) []byte {
	if n < 0 {
		panic("BUG: int must be positive")
	}

	var b [20]byte
	buf := b[:]
	i := len(buf)
	var q int
	for n >= 10 {
		i--
		q = n / 10
		buf[i] = '0' + byte(n-q*10)
		n = q
	}
	i--
	buf[i] = '0' + byte(n)

	dst = append(dst, buf[i:]...)
	return dst
}

// ParseUint parses uint from buf.
func ParseUint(buf []byte) (int, error) {
	v, n, err := parseUintBuf(buf)
	if n != len(buf) {
		return -1, fmt.Errorf("only %d bytes out of %d bytes exhausted when parsing int", n, len(buf))
	}
	return v, err
}

func parseUintBuf(b []byte) (int, int, error) {
	n := len(b)
	if n == 0 {
		return -1, 0, errors.New("empty integer")
	}
	v := 0
	for i := 0; i < n; i++ {
		c := b[i]
		k := c - '0'
		if k > 9 {
			if i == 0 {
				return -1, i, fmt.Errorf("unexpected first char %c. Expected 0-9", c)
			}
			return v, i, nil
		}
		if i >= maxIntChars {
			return -1, i, errors.New("too long int")
		}
		v = 10*v + int(k)
	}
	return v, n, nil
}

// hexAccumulate returns n*16 + k, reporting false on int overflow.
func hexAccumulate(n, k int) (int, bool) {
	if n > (math.MaxInt-k)>>4 {
		return -1, false
	}
	return n<<4 | k, true
}

var hex2intTable = func() []byte {
	b := make([]byte, 256)
	for i := 0; i < 256; i++ {
		c := byte(0)
		if i >= '0' && i <= '9' {
			c = 1 + byte(i) - '0'
		} else if i >= 'a' && i <= 'f' {
			c = 1 + byte(i) - 'a' + 10
		} else if i >= 'A' && i <= 'F' {
			c = 1 + byte(i) - 'A' + 10
		}
		b[i] = c
	}
	return b
}()

func hexbyte2int(c byte) int {
	return int(hex2intTable[c]) - 1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
