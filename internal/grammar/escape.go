package grammar

import (
	"bytes"

	"github.com/ghettovoice/uriref/internal/constraints"
)

// Unescape unescapes s by converting each 3-byte encoded substring of the form "% HEXDIG HEXDIG" into the hex-decoded byte.
func Unescape[T constraints.Byteseq](s T) T {
	if !bytes.ContainsRune([]byte(s), '%') {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isEscape(s, i) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// Escape escapes every byte matched by shouldEscape to the form "%" HEXDIG HEXDIG.
// Valid percent-encoded triplets are kept as is, a '%' that does not start a triplet is escaped as "%25".
// A nil shouldEscape escapes everything except the RFC 3986 unreserved characters.
func Escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsUnreserved(c) }
	}

	i := 0
	for ; i < len(s); i++ {
		if s[i] == '%' && !isEscape(s, i) || s[i] != '%' && shouldEscape(s[i]) {
			break
		}
	}
	if i == len(s) {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s) + 16)
	b.WriteString(string(s[:i]))
	for ; i < len(s); i++ {
		switch {
		case isEscape(s, i):
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			b.WriteByte(s[i+2])
			i += 2
		case s[i] == '%' || shouldEscape(s[i]):
			writeEscape(&b, s[i])
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// UpperEscapes rewrites the hex digits of every percent-encoded triplet in upper case.
func UpperEscapes[T constraints.Byteseq](s T) T {
	return transformEscapes(s, func(b *bytes.Buffer, c byte) { writeEscape(b, c) })
}

// UnescapeUnreserved decodes the percent-encoded triplets that encode an unreserved character.
// Other triplets are kept unchanged.
func UnescapeUnreserved[T constraints.Byteseq](s T) T {
	return transformEscapes(s, nil)
}

func transformEscapes[T constraints.Byteseq](s T, reencode func(*bytes.Buffer, byte)) T {
	if !bytes.ContainsRune([]byte(s), '%') {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if !isEscape(s, i) {
			b.WriteByte(s[i])
			continue
		}

		c := unhex(s[i+1])<<4 | unhex(s[i+2])
		switch {
		case reencode != nil:
			reencode(&b, c)
		case IsUnreserved(c):
			b.WriteByte(c)
		default:
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			b.WriteByte(s[i+2])
		}
		i += 2
	}
	return T(b.Bytes())
}

func writeEscape(b *bytes.Buffer, c byte) {
	b.WriteByte('%')
	b.WriteByte(upperhex[c>>4])
	b.WriteByte(upperhex[c&15])
}

func isEscape[T constraints.Byteseq](s T, i int) bool {
	return s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2])
}

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// IsAlphanum checks ALPHA / DIGIT.
func IsAlphanum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// IsUnreserved checks the RFC 3986 unreserved rule.
func IsUnreserved(c byte) bool {
	switch c {
	case '-', '.', '_', '~':
		return true
	}
	return IsAlphanum(c)
}

// IsSubDelim checks the RFC 3986 sub-delims rule.
func IsSubDelim(c byte) bool {
	switch c {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	}
	return false
}

// IsPathChar checks pchar without pct-encoded, plus the segment separator.
func IsPathChar(c byte) bool {
	return IsUnreserved(c) || IsSubDelim(c) || c == ':' || c == '@' || c == '/'
}

// IsQueryChar checks the query and fragment rules without pct-encoded.
func IsQueryChar(c byte) bool {
	return IsPathChar(c) || c == '?'
}

// IsSchemeChar checks the characters allowed after the first one of a scheme.
// Leading digits are tolerated as well, so the whole run is checked with this predicate.
func IsSchemeChar(c byte) bool {
	return IsAlphanum(c) || c == '+' || c == '-' || c == '.'
}
