// Package header splits raw header blocks into name/value fields following
// the header-field grammar of RFC 7230 Section 3.2.
//
// Use [Split] for a whole block and [ParseField] for a single line:
//
//	fs, err := header.Split("Host: example.com\r\nAccept: */*\r\n\r\n")
//	host, _ := fs.Get("host")
//
// Field names are kept as received and compared case-insensitively.
// Obsolete line folding is unfolded into a single space and values are trimmed of
// surrounding whitespace. Failures wrap [ErrEmptyInput] or [ErrMalformedInput].
package header
