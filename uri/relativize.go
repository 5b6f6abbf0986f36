package uri

import "strings"

// Relativize returns the shortest reference that resolves against base to target.
//
// It is the counterpart of [Resolve]:
//
//	Resolve(base, Relativize(base, target)) == Resolve(base, target)
//
// When target cannot be expressed relative to base (different scheme or authority,
// absolute versus rootless paths) the result falls back to a network-path reference,
// an absolute-path reference or target itself. A relative-path reference target is
// returned unchanged unless base is a relative-path reference too.
//
// Relativize does not normalize, call [Normalize] on both arguments first to get the
// shortest reference between equivalent URIs.
func Relativize(base, target URI) URI {
	if target.scheme != "" &&
		(base.scheme != target.scheme || !target.hasAuthority() && base.hasAuthority()) {
		return target
	}

	if target.IsRelativePathReference() && !base.IsRelativePathReference() {
		return target
	}

	if target.hasAuthority() && base.Authority() != target.Authority() {
		return networkPathRef(target)
	}

	ref := URI{query: target.query, fragment: target.fragment}

	if base.path == target.path {
		switch {
		case base.query == target.query && (target.fragment != "" || base.fragment == ""):
			ref.query = ""
			return ref
		case target.query != "":
			return ref
		}

		if target.path == "" && target.hasAuthority() {
			return networkPathRef(target)
		}
		ref.path = relativeSegmentPath(target.path[strings.LastIndexByte(target.path, '/')+1:])
		return ref
	}

	if target.path == "" && target.hasAuthority() {
		return networkPathRef(target)
	}

	dir := RemoveDotSegments(mergeDir(base))
	targetPath := RemoveDotSegments(target.path)
	switch dirAbs, targetAbs := strings.HasPrefix(dir, "/"), strings.HasPrefix(targetPath, "/"); {
	case dirAbs && !targetAbs:
		return target
	case !dirAbs && targetAbs:
		if strings.HasPrefix(targetPath, "//") {
			return target
		}
		ref.path = targetPath
		return ref
	}

	baseDirs := dirSegments(dir)
	targetSegs := strings.Split(strings.TrimPrefix(targetPath, "/"), "/")
	targetDirs, file := targetSegs[:len(targetSegs)-1], targetSegs[len(targetSegs)-1]

	n := commonPrefixLen(baseDirs, targetDirs)
	rel := strings.Repeat("../", len(baseDirs)-n) + strings.Join(append(targetDirs[n:], file), "/")
	ref.path = relativeSegmentPath(rel)
	return ref
}

// relativeSegmentPath makes p safe to use as the path of a relative-path reference.
func relativeSegmentPath(p string) string {
	if p == "" || p[0] == '/' || strings.Contains(firstSegment(p), ":") {
		return "./" + p
	}
	return p
}

func networkPathRef(target URI) URI {
	target.scheme = ""
	return target
}
