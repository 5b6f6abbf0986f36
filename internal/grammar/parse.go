package grammar

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/uriref/internal/constraints"
)

// ParseHeaderField parses a single CRLF-terminated header-field line and
// returns the raw field name and value. The value keeps its surrounding whitespace.
func ParseHeaderField[T constraints.Byteseq](s T) (name, value string, err error) {
	if len(s) == 0 {
		return "", "", errtrace.Wrap(ErrEmptyInput)
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := HeaderField([]byte(s), ns); err != nil {
		return "", "", errtrace.Wrap(newMalformedInputErr(err))
	}

	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return "", "", errtrace.Wrap(newMalformedInputErr("node length %d < input length %d", nl, il))
	}

	name = MustGetNode(n, "field-name").String()
	if vn, ok := n.GetNode("field-value"); ok {
		value = vn.String()
	}
	return name, value, nil
}
