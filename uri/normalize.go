package uri

import (
	"slices"
	"strings"

	"github.com/ghettovoice/uriref/internal/grammar"
)

// NormalizeFlags selects the transformations applied by [Normalize].
type NormalizeFlags uint

const (
	// CapitalizePercentEncoding upper-cases the hex digits of percent-encoded triplets
	// in the path and the query.
	//
	//	http://example.org/a%c2%b1b → http://example.org/a%C2%B1b
	CapitalizePercentEncoding NormalizeFlags = 1 << iota
	// DecodeUnreservedCharacters decodes percent-encoded unreserved characters
	// (ALPHA, DIGIT, "-", ".", "_", "~") in the path and the query.
	//
	//	http://example.org/%7Eusern%61me/ → http://example.org/~username/
	DecodeUnreservedCharacters
	// ReplaceEmptyPath replaces the empty path of http and https URIs with "/".
	//
	//	http://example.org → http://example.org/
	ReplaceEmptyPath
	// RemoveDefaultPort removes a port equal to the default port of the scheme.
	//
	//	http://example.org:80/ → http://example.org/
	RemoveDefaultPort
	// RemoveDotSegmentsNormalization removes "." and ".." segments from the path of every URI
	// except relative-path references.
	//
	//	http://example.org/../a/b/../c/./d.html → http://example.org/a/c/d.html
	RemoveDotSegmentsNormalization
	// RemoveDuplicateSlashes collapses runs of slashes in the path.
	// It may change the semantics of the URI.
	//
	//	http://example.org//foo///bar.html → http://example.org/foo/bar.html
	RemoveDuplicateSlashes
	// SortQueryParameters sorts the "&"-separated query tokens byte-wise.
	// It may change the semantics of the URI.
	//
	//	?lang=en&article=fred → ?article=fred&lang=en
	SortQueryParameters

	// PreservingNormalizations are the normalizations that never change the semantics of a URI.
	PreservingNormalizations = CapitalizePercentEncoding | DecodeUnreservedCharacters |
		ReplaceEmptyPath | RemoveDefaultPort | RemoveDotSegmentsNormalization
)

var normalizeFlagNames = []struct {
	flag NormalizeFlags
	name string
}{
	{CapitalizePercentEncoding, "capitalize-percent-encoding"},
	{DecodeUnreservedCharacters, "decode-unreserved-characters"},
	{ReplaceEmptyPath, "replace-empty-path"},
	{RemoveDefaultPort, "remove-default-port"},
	{RemoveDotSegmentsNormalization, "remove-dot-segments"},
	{RemoveDuplicateSlashes, "remove-duplicate-slashes"},
	{SortQueryParameters, "sort-query-parameters"},
}

// String returns the "|"-separated names of the set flags.
func (f NormalizeFlags) String() string {
	var names []string
	for _, fn := range normalizeFlagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseNormalizeFlag returns the flag with the given name, as printed by [NormalizeFlags.String].
// The name "preserving" stands for [PreservingNormalizations].
func ParseNormalizeFlag(name string) (NormalizeFlags, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "preserving" {
		return PreservingNormalizations, true
	}
	for _, fn := range normalizeFlagNames {
		if fn.name == name {
			return fn.flag, true
		}
	}
	return 0, false
}

// Normalize returns u transformed by the normalizations selected by flags (RFC 3986 Section 6).
//
// Normalize never fails: a dot-segment removal that would leave a URI without authority
// with a path starting with "//" is skipped.
func Normalize(u URI, flags NormalizeFlags) URI {
	if flags&CapitalizePercentEncoding != 0 {
		u.path = grammar.UpperEscapes(u.path)
		u.query = grammar.UpperEscapes(u.query)
	}

	if flags&DecodeUnreservedCharacters != 0 {
		u.path = grammar.UnescapeUnreserved(u.path)
		u.query = grammar.UnescapeUnreserved(u.query)
	}

	if flags&ReplaceEmptyPath != 0 && u.path == "" && (u.scheme == "http" || u.scheme == "https") {
		u.path = "/"
	}

	if flags&RemoveDefaultPort != 0 && u.IsDefaultPort() {
		u.port = 0
	}

	if flags&RemoveDotSegmentsNormalization != 0 && !u.IsRelativePathReference() {
		if p := RemoveDotSegments(u.path); u.hasAuthority() || !strings.HasPrefix(p, "//") {
			u.path = p
		}
	}

	if flags&RemoveDuplicateSlashes != 0 {
		u.path = collapseSlashes(u.path)
	}

	if flags&SortQueryParameters != 0 && u.query != "" {
		kvs := strings.Split(u.query, "&")
		slices.Sort(kvs)
		u.query = strings.Join(kvs, "&")
	}

	return u
}

// IsEquivalent reports whether a and b serialize identically after [Normalize] with flags.
func IsEquivalent(a, b URI, flags NormalizeFlags) bool {
	return Normalize(a, flags).String() == Normalize(b, flags).String()
}

func collapseSlashes(p string) string {
	if !strings.Contains(p, "//") {
		return p
	}

	var sb strings.Builder
	sb.Grow(len(p))
	for i := 0; i < len(p); i++ {
		if p[i] == '/' && i > 0 && p[i-1] == '/' {
			continue
		}
		sb.WriteByte(p[i])
	}
	return sb.String()
}
