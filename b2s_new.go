//go:build go1.20

package zhttp

import "unsafe"

// b2s converts byte slice to a string without memory allocation.
//
// The returned string aliases b and must not outlive the next change of b.
func b2s(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	return unsafe.String(&b[0], len(b))
}
