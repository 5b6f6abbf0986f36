// Package uri implements URI references as defined by RFC 3986.
//
// # Overview
//
// [URI] is an immutable, comparable value. Its components are filtered on every
// construction: the scheme and the host are lower-cased, characters not allowed in
// the path, query and fragment are percent-encoded (existing escapes are kept) and
// a port equal to the default one of the scheme is dropped.
//
// Construction always validates the relationship between the path and the authority.
// A "file" URI is always serialized with "//" even without an authority, so a rootless
// one such as "file:c:d" renders as "file://c:d" and does not parse back.
// Every other URI value serializes to a string that parses back to the same value.
//
// # Parsing
//
//	u, err := uri.Parse("https://user@Example.com:443/a/./b?q=1#top")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(u.String()) // https://user@example.com/a/./b?q=1#top
//
// [Split] exposes the raw components, [FromParts] and [FromURL] build a URI from
// components. The zero URI is the empty reference and can be populated with the
// With* transformers:
//
//	u, err := uri.URI{}.WithScheme("http")
//	// http://localhost
//
// # Reference resolution
//
// [Resolve] implements RFC 3986 Section 5.2 and [Relativize] is its inverse:
//
//	base := uri.MustParse("http://a/b/c/d;p?q")
//	t, _ := uri.ResolveString(base, "../g") // http://a/b/g
//	uri.Relativize(base, t)                  // ../g
//
// # Normalization
//
// [Normalize] applies the transformations selected by [NormalizeFlags],
// [IsEquivalent] compares two URIs after normalization. [PreservingNormalizations]
// never change the semantics of a URI, [RemoveDuplicateSlashes] and
// [SortQueryParameters] may and are never applied by default.
//
// # Errors
//
// All returned errors wrap one of the sentinel [Error] constants,
// use [errors.Is] to inspect them.
package uri
