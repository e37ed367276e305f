package linkurl

import "strings"

const upperhex = "0123456789ABCDEF"

// uriKeep reports whether encodeURI leaves b untouched: unreserved marks plus
// the characters that carry URI structure.
func uriKeep(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	}
	return strings.IndexByte(";,/?:@&=+$-_.!~*'()#", b) >= 0
}

// EncodeURI percent-encodes a complete URI the way browsers' encodeURI does:
// reserved characters are kept so the URI structure survives, everything else
// is encoded byte-wise as UTF-8. An existing '%' is encoded too.
func EncodeURI(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !uriKeep(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriKeep(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}
	return sb.String()
}
