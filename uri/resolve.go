package uri

import (
	"strings"

	"braces.dev/errtrace"
)

// Resolve transforms the reference ref into a target URI relative to base (RFC 3986 Section 5.2).
//
// An empty ref yields base itself. The fragment of the result always comes from ref.
// The result is validated like any freshly built URI, the only possible failure is a
// merged path that starts with "//" while the result has no authority.
func Resolve(base, ref URI) (URI, error) {
	if ref.IsZero() {
		return base, nil
	}

	if ref.scheme != "" {
		return errtrace.Wrap2(ref.WithPath(RemoveDotSegments(ref.path)))
	}

	t := URI{scheme: base.scheme, fragment: ref.fragment}
	switch {
	case ref.hasAuthority():
		t.userInfo, t.host, t.port = ref.userInfo, ref.host, ref.port
		t.path = RemoveDotSegments(ref.path)
		t.query = ref.query
	case ref.path == "":
		t.userInfo, t.host, t.port = base.userInfo, base.host, base.port
		t.path = base.path
		t.query = ref.query
		if t.query == "" {
			t.query = base.query
		}
	default:
		t.userInfo, t.host, t.port = base.userInfo, base.host, base.port
		t.path = RemoveDotSegments(mergePaths(base, ref.path))
		t.query = ref.query
	}
	return errtrace.Wrap2(t.validate())
}

// ResolveString parses ref and resolves it against base.
func ResolveString(base URI, ref string) (URI, error) {
	r, err := Parse(ref)
	if err != nil {
		return URI{}, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(Resolve(base, r))
}

func mergePaths(base URI, refPath string) string {
	if strings.HasPrefix(refPath, "/") {
		return refPath
	}
	return mergeDir(base) + refPath
}
