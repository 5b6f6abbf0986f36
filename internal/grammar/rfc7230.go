package grammar

import "github.com/ghettovoice/abnf"

// RFC 7230 Section 3.2, with field-content relaxed to a run of
// VCHAR / obs-text / SP / HTAB so that empty and space-separated values match.
var (
	tchar = abnf.Alt(
		"tchar",
		abnf.Literal(`"!"`, []byte{0x21}),
		abnf.Range(`%x23-27`, []byte{0x23}, []byte{0x27}),
		abnf.Range(`%x2A-2B`, []byte{0x2A}, []byte{0x2B}),
		abnf.Range(`%x2D-2E`, []byte{0x2D}, []byte{0x2E}),
		abnf.Range(`DIGIT`, []byte{0x30}, []byte{0x39}),
		abnf.Range(`%x41-5A`, []byte{0x41}, []byte{0x5A}),
		abnf.Range(`%x5E-7A`, []byte{0x5E}, []byte{0x7A}),
		abnf.Literal(`"|"`, []byte{0x7C}),
		abnf.Literal(`"~"`, []byte{0x7E}),
	)

	token = abnf.Repeat1Inf("token", tchar)

	fieldName = abnf.Repeat1Inf("field-name", tchar)

	fieldChar = abnf.Alt(
		"field-char",
		abnf.Literal(`HTAB`, []byte{0x09}),
		abnf.Range(`SP / VCHAR`, []byte{0x20}, []byte{0x7E}),
		abnf.Range(`obs-text`, []byte{0x80}, []byte{0xFF}),
	)

	fieldValue = abnf.Repeat0Inf("field-value", fieldChar)

	headerField = abnf.Concat(
		"header-field",
		fieldName,
		abnf.Literal(`":"`, []byte{0x3A}),
		fieldValue,
		abnf.Literal(`CRLF`, []byte{0x0D, 0x0A}),
	)
)

// HeaderField matches a single CRLF-terminated header-field line.
func HeaderField(s []byte, ns *abnf.Nodes) error {
	return headerField(s, 0, ns) //errtrace:skip
}
