package uri

import "strings"

// RemoveDotSegments removes the "." and ".." segments from path (RFC 3986 Section 5.2.4).
//
// A ".." segment drops the preceding segment, on an empty stack it is ignored.
// The root of an absolute path is never dropped, so "/..//b" becomes "//b".
// A path that ended with "." or ".." keeps a trailing slash.
// The paths "", "/" and "*" are returned unchanged.
func RemoveDotSegments(path string) string {
	switch path {
	case "", "/", "*":
		return path
	}

	abs := path[0] == '/'
	segs := strings.Split(path, "/")
	if abs {
		segs = segs[1:]
	}

	out := make([]string, 0, len(segs))
	for _, seg := range segs {
		switch seg {
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case ".":
		default:
			out = append(out, seg)
		}
	}

	res := strings.Join(out, "/")
	if last := segs[len(segs)-1]; len(out) > 0 && (last == "." || last == "..") {
		res += "/"
	}
	if abs {
		res = "/" + res
	}
	return res
}

// mergeDir returns the directory of the base path that a relative-path reference is merged onto:
// everything up to and including the last "/", or "/" when base has an authority and an empty path.
func mergeDir(base URI) string {
	if base.hasAuthority() && base.path == "" {
		return "/"
	}
	if i := strings.LastIndexByte(base.path, '/'); i >= 0 {
		return base.path[:i+1]
	}
	return ""
}

// dirSegments splits a dot-free directory path ending with "/" into its segments,
// without the leading root and the trailing empty segment.
func dirSegments(dir string) []string {
	dir = strings.TrimPrefix(dir, "/")
	if dir == "" {
		return nil
	}
	return strings.Split(dir[:len(dir)-1], "/")
}

func commonPrefixLen(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
