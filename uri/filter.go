package uri

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/errorutil"
	"github.com/ghettovoice/uriref/internal/grammar"
	"github.com/ghettovoice/uriref/internal/util"
)

const defaultHTTPHost = "localhost"

var defaultPorts = map[string]uint16{
	"http":  80,
	"https": 443,
}

// DefaultPort returns the well-known port of the scheme, or 0 if the scheme has none.
func DefaultPort(scheme string) uint16 { return defaultPorts[util.LCase(scheme)] }

func filterScheme(s string) string { return util.LCase(s) }

func filterHost(s string) string { return util.LCase(s) }

// filterPort validates p and elides it when it equals the default port of scheme.
// A zero p means no port.
func filterPort(p int, scheme string) (uint16, error) {
	if p == 0 {
		return 0, nil
	}
	if p < 1 || p > 0xFFFF {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPort, "port %d is out of range 1-65535", p))
	}
	if uint16(p) == defaultPorts[scheme] {
		return 0, nil
	}
	return uint16(p), nil
}

func shouldEscapePathChar(c byte) bool { return !grammar.IsPathChar(c) }

func shouldEscapeQueryChar(c byte) bool { return !grammar.IsQueryChar(c) }

func filterPath(s string) string { return grammar.Escape(s, shouldEscapePathChar) }

func filterQueryOrFragment(s string) string { return grammar.Escape(s, shouldEscapeQueryChar) }
