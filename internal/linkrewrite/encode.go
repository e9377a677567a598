package linkrewrite

import "strings"

const upperhex = "0123456789ABCDEF"

// shouldEscape reports whether b is percent-encoded inside a path segment:
// control characters, non-ASCII bytes, space, quotes, angle brackets and backtick.
func shouldEscape(b byte) bool {
	if b < 0x20 || b >= 0x7f {
		return true
	}
	switch b {
	case ' ', '"', '<', '>', '`':
		return true
	}
	return false
}

// EncodePath percent-encodes each "/"-separated segment of p and rejoins them.
// Existing escapes are left alone, so encoding is idempotent.
func EncodePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = encodeSegment(s)
	}
	return strings.Join(segments, "/")
}

func encodeSegment(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
