package uri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/errorutil"
	"github.com/ghettovoice/uriref/internal/ioutil"
	"github.com/ghettovoice/uriref/internal/util"
)

// URI is an immutable URI reference as defined by RFC 3986.
//
// The zero value is the empty reference "". Components are stored already filtered:
// scheme and host are lower-cased, path, query and fragment are percent-encoded
// and a port equal to the scheme default is stored as absent.
// Transformers (the With* methods) return a new value and never modify the receiver.
//
// URI is comparable, two values are == when all their components are equal.
type URI struct {
	scheme   string
	userInfo string
	host     string
	port     uint16
	path     string
	query    string
	fragment string
}

// Scheme returns the lower-cased scheme, or an empty string.
func (u URI) Scheme() string { return u.scheme }

// UserInfo returns the user information, including the ":password" part if any.
func (u URI) UserInfo() string { return u.userInfo }

// Host returns the lower-cased host, or an empty string.
func (u URI) Host() string { return u.host }

// Port returns the port and true, or 0 and false when the port is absent
// (including when it was elided as the default port of the scheme).
func (u URI) Port() (uint16, bool) { return u.port, u.port != 0 }

// Path returns the percent-encoded path.
func (u URI) Path() string { return u.path }

// Query returns the percent-encoded query without the leading "?".
func (u URI) Query() string { return u.query }

// Fragment returns the percent-encoded fragment without the leading "#".
func (u URI) Fragment() string { return u.fragment }

// Authority returns the authority in the form [userinfo "@"] host [":" port].
func (u URI) Authority() string {
	if u.userInfo == "" && u.port == 0 {
		return u.host
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	u.writeAuthority(sb)
	return sb.String()
}

func (u URI) writeAuthority(sb *strings.Builder) {
	if u.userInfo != "" {
		sb.WriteString(u.userInfo)
		sb.WriteByte('@')
	}
	sb.WriteString(u.host)
	if u.port != 0 {
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatUint(uint64(u.port), 10))
	}
}

func (u URI) hasAuthority() bool { return u.userInfo != "" || u.host != "" || u.port != 0 }

// IsZero reports whether u is the empty reference.
func (u URI) IsZero() bool { return u == URI{} }

// RenderTo writes the serialized URI to w.
func (u URI) RenderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	if u.scheme != "" {
		cw.WriteStrings(u.scheme, ":")
	}
	if u.hasAuthority() || u.scheme == "file" {
		cw.WriteStrings("//", u.Authority())
	}
	cw.WriteStrings(u.path)
	if u.query != "" {
		cw.WriteStrings("?", u.query)
	}
	if u.fragment != "" {
		cw.WriteStrings("#", u.fragment)
	}
	return errtrace.Wrap2(cw.Result())
}

// String returns the serialized URI.
func (u URI) String() string {
	if u.IsZero() {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// Format implements fmt.Formatter.
// Verbs 's' and 'q' print the serialized URI, other verbs print the components.
func (u URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URI
		type URI hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), URI(u))
		return
	}
}

// Equal reports whether val is a URI (or a non-nil *URI) with exactly the same components.
// Use [IsEquivalent] to compare URIs after normalization.
func (u URI) Equal(val any) bool {
	switch v := val.(type) {
	case URI:
		return u == v
	case *URI:
		return v != nil && u == *v
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (u URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *URI) UnmarshalText(data []byte) error {
	v, err := Parse(data)
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = v
	return nil
}

// IsAbsolute reports whether u has a scheme (RFC 3986 Section 4.3).
func (u URI) IsAbsolute() bool { return u.scheme != "" }

// IsNetworkPathReference reports whether u starts with "//" (RFC 3986 Section 4.2).
func (u URI) IsNetworkPathReference() bool { return u.scheme == "" && u.hasAuthority() }

// IsAbsolutePathReference reports whether u is a reference whose path starts with "/" (RFC 3986 Section 4.2).
func (u URI) IsAbsolutePathReference() bool {
	return u.scheme == "" && !u.hasAuthority() && strings.HasPrefix(u.path, "/")
}

// IsRelativePathReference reports whether u is a reference without scheme and authority
// whose path does not start with "/" (RFC 3986 Section 4.2).
func (u URI) IsRelativePathReference() bool {
	return u.scheme == "" && !u.hasAuthority() && !strings.HasPrefix(u.path, "/")
}

// IsSameDocumentReference reports whether u refers to the same document as base
// (RFC 3986 Section 4.4): each of scheme, authority, path and query of u is either
// empty or equal to the one of base. With a zero base it reports whether u is
// a fragment-only (or empty) reference.
func (u URI) IsSameDocumentReference(base URI) bool {
	return (u.scheme == "" || u.scheme == base.scheme) &&
		(!u.hasAuthority() || u.Authority() == base.Authority()) &&
		(u.path == "" || u.path == base.path) &&
		(u.query == "" || u.query == base.query)
}

// IsDefaultPort reports whether u has no port or its port is the default one of the scheme.
func (u URI) IsDefaultPort() bool {
	return u.port == 0 || u.port == defaultPorts[u.scheme]
}

// WithScheme returns a copy of u with the scheme replaced.
// The port is re-evaluated against the new scheme default.
func (u URI) WithScheme(scheme string) (URI, error) {
	scheme = filterScheme(scheme)
	if u.scheme == scheme {
		return u, nil
	}
	u.scheme = scheme
	return errtrace.Wrap2(u.validate())
}

// WithUserInfo returns a copy of u with the user information replaced.
// A non-empty password is appended as ":password".
func (u URI) WithUserInfo(user, password string) (URI, error) {
	info := user
	if password != "" {
		info += ":" + password
	}
	if u.userInfo == info {
		return u, nil
	}
	u.userInfo = info
	return errtrace.Wrap2(u.validate())
}

// WithHost returns a copy of u with the host replaced.
func (u URI) WithHost(host string) (URI, error) {
	host = filterHost(host)
	if u.host == host {
		return u, nil
	}
	u.host = host
	return errtrace.Wrap2(u.validate())
}

// WithPort returns a copy of u with the port replaced.
// It fails with [ErrInvalidPort] when port is outside of the range 1-65535.
func (u URI) WithPort(port int) (URI, error) {
	if port == 0 {
		return URI{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPort, "port 0 is out of range 1-65535"))
	}
	p, err := filterPort(port, u.scheme)
	if err != nil {
		return URI{}, errtrace.Wrap(err)
	}
	u.port = p
	return errtrace.Wrap2(u.validate())
}

// WithoutPort returns a copy of u without the port.
func (u URI) WithoutPort() (URI, error) {
	if u.port == 0 {
		return u, nil
	}
	u.port = 0
	return errtrace.Wrap2(u.validate())
}

// WithPath returns a copy of u with the path replaced.
// Characters not allowed in a path are percent-encoded, existing escapes are kept.
func (u URI) WithPath(path string) (URI, error) {
	path = filterPath(path)
	if u.path == path {
		return u, nil
	}
	u.path = path
	return errtrace.Wrap2(u.validate())
}

// WithQuery returns a copy of u with the query replaced.
// Characters not allowed in a query are percent-encoded, existing escapes are kept.
// The query is taken literally, a leading "?" becomes part of it.
func (u URI) WithQuery(query string) URI {
	u.query = filterQueryOrFragment(query)
	return u
}

// WithFragment returns a copy of u with the fragment replaced.
// Characters not allowed in a fragment are percent-encoded, existing escapes are kept.
func (u URI) WithFragment(fragment string) URI {
	u.fragment = filterQueryOrFragment(fragment)
	return u
}

// validate re-establishes the derived state of u (default host and port elision)
// and checks the constraints between path and authority.
func (u URI) validate() (URI, error) {
	if u.port != 0 && u.port == defaultPorts[u.scheme] {
		u.port = 0
	}
	if u.host == "" && (u.scheme == "http" || u.scheme == "https") {
		u.host = defaultHTTPHost
	}

	if !u.hasAuthority() {
		if strings.HasPrefix(u.path, "//") {
			return URI{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPathForAuthority,
				"path %q must not start with \"//\" when there is no authority", u.path))
		}
		if u.scheme == "" && strings.Contains(firstSegment(u.path), ":") {
			return URI{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidRelativePath,
				"first segment of relative path %q must not contain a colon", u.path))
		}
	} else if u.path != "" && u.path[0] != '/' {
		return URI{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPathForAuthority,
			"path %q must be empty or start with \"/\" when an authority is present", u.path))
	}
	return u, nil
}

func firstSegment(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
