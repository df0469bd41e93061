// Package matchstr implements the loose name comparison used for HTTP
// header names and well-known header values.
package matchstr

// Match reports whether s matches pattern.
//
// Comparison is ASCII case-insensitive. A '?' in pattern matches whatever
// is left of s. A '-' in either string is skipped once before the next
// character pair is compared, so "Content-Type" matches "contenttype".
// A '.' in pattern matches any single character of s.
func Match(s, pattern string) bool {
	i, j := 0, 0
	for i < len(s) && j < len(pattern) {
		c1 := s[i]
		c2 := pattern[j]

		if c2 == '?' {
			return true
		}
		if c1 == '-' {
			i++
			c1 = at(s, i)
		}
		if c2 == '-' {
			j++
			c2 = at(pattern, j)
		}
		if c1 == 0 || c2 == 0 {
			break
		}
		if c2 != '.' && lower(c1) != lower(c2) {
			break
		}
		i++
		j++
	}
	return at(s, i) == 0 && at(pattern, j) == 0
}

// at returns s[i], or 0 past the end of s.
func at(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
