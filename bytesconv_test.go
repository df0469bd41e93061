package zhttp

import (
	"math"
	"testing"
)

func TestAppendUint(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 9, 10, 404, 1234567890, math.MaxInt32} {
		expected := itoa(n)
		if s := string(AppendUint(nil, n)); s != expected {
			t.Fatalf("Unexpected AppendUint(%d)=%q. Expected %q", n, s, expected)
		}
	}
	if s := string(AppendUint([]byte("Content-Length: "), 42)); s != "Content-Length: 42" {
		t.Fatalf("Unexpected result %q", s)
	}
}

func TestParseUintSuccess(t *testing.T) {
	t.Parallel()

	testParseUintSuccess(t, "0", 0)
	testParseUintSuccess(t, "123", 123)
	testParseUintSuccess(t, "123456789012345678", 123456789012345678)
}

func TestParseUintError(t *testing.T) {
	t.Parallel()

	// empty string
	testParseUintError(t, "")

	// negative value
	testParseUintError(t, "-123")

	// non-num
	testParseUintError(t, "foobar234")

	// non-num chars at the end
	testParseUintError(t, "123w")

	// too big num
	testParseUintError(t, "12345678901234567890")
}

func testParseUintSuccess(t *testing.T, s string, expectedN int) {
	t.Helper()
	n, err := ParseUint([]byte(s))
	if err != nil {
		t.Fatalf("Unexpected error when parsing %q: %v", s, err)
	}
	if n != expectedN {
		t.Fatalf("Unexpected value %d. Expected %d. num=%q", n, expectedN, s)
	}
}

func testParseUintError(t *testing.T, s string) {
	t.Helper()
	n, err := ParseUint([]byte(s))
	if err == nil {
		t.Fatalf("Expecting error when parsing %q. obtained %d", s, n)
	}
	if n >= 0 {
		t.Fatalf("Unexpected n=%d when parsing %q. Expected negative num", n, s)
	}
}

func TestHexbyte2int(t *testing.T) {
	t.Parallel()

	for c, expected := range map[byte]int{'0': 0, '9': 9, 'a': 10, 'f': 15, 'A': 10, 'F': 15, 'g': -1, 'G': -1, '\r': -1, ';': -1, 0xff: -1} {
		if k := hexbyte2int(c); k != expected {
			t.Fatalf("Unexpected hexbyte2int(%q)=%d. Expected %d", c, k, expected)
		}
	}
}

func TestHexAccumulate(t *testing.T) {
	t.Parallel()

	n, ok := hexAccumulate(0x1f, 0xa)
	if !ok || n != 0x1fa {
		t.Fatalf("Unexpected result %x %v", n, ok)
	}
	if _, ok := hexAccumulate(math.MaxInt>>4+1, 0); ok {
		t.Fatalf("Expecting overflow")
	}
	if n, ok := hexAccumulate(math.MaxInt>>4, 0xf); !ok || n != math.MaxInt {
		t.Fatalf("Unexpected result %x %v", n, ok)
	}
}
