package uri

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/errorutil"
	"github.com/ghettovoice/uriref/internal/grammar"
	"github.com/ghettovoice/uriref/internal/util"
)

// Parts is a URI decomposed into raw components.
//
// Recognized keys are "scheme", "user", "pass", "host", "port", "path", "query" and "fragment".
// All values are strings except "port" which may also be any integer type.
// Missing keys mean absent components.
type Parts map[string]any

// Parse parses the URI reference s (string or []byte).
//
// The string is split into components following RFC 3986 Appendix B,
// components are filtered the same way the With* transformers do and
// the result is validated. An empty input yields the zero URI.
func Parse[T ~string | ~[]byte](s T) (URI, error) {
	if len(s) == 0 {
		return URI{}, nil
	}

	parts, err := Split(s)
	if err != nil {
		return URI{}, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(FromParts(parts))
}

// MustParse is like [Parse] but panics on error.
func MustParse[T ~string | ~[]byte](s T) URI {
	return util.Must2(Parse(s))
}

// Split decomposes s into raw, unfiltered components.
//
// It fails with [ErrMalformedURI] when "//" is followed by an empty authority
// (except for the "file" scheme), when the port is not a number in the range 1-65535
// or when the host contains a stray colon.
func Split[T ~string | ~[]byte](s T) (Parts, error) {
	rest := string(s)
	parts := Parts{}

	if i := strings.IndexByte(rest, '#'); i >= 0 {
		parts["fragment"] = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		parts["query"] = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, ':'); i > 0 && isScheme(rest[:i]) {
		parts["scheme"] = rest[:i]
		rest = rest[i+1:]
	}

	if auth, ok := strings.CutPrefix(rest, "//"); ok {
		rest = ""
		if i := strings.IndexByte(auth, '/'); i >= 0 {
			auth, rest = auth[:i], auth[i:]
		}
		if auth == "" {
			if scheme, _ := parts["scheme"].(string); util.LCase(scheme) != "file" {
				return nil, errtrace.Wrap(newMalformedURIErr("empty authority in %q", string(s)))
			}
		} else if err := splitAuthority(auth, parts); err != nil {
			return nil, errtrace.Wrap(newMalformedURIErr(fmt.Errorf("%q: %w", string(s), err)))
		}
	}
	parts["path"] = rest
	return parts, nil
}

func isScheme(s string) bool {
	for i := range len(s) {
		if !grammar.IsSchemeChar(s[i]) {
			return false
		}
	}
	return true
}

func splitAuthority(auth string, parts Parts) error {
	hostPort := auth
	if i := strings.LastIndexByte(auth, '@'); i >= 0 {
		hostPort = auth[i+1:]
		user, pass, ok := strings.Cut(auth[:i], ":")
		parts["user"] = user
		if ok {
			parts["pass"] = pass
		}
	}

	host, port := hostPort, ""
	if strings.HasPrefix(hostPort, "[") {
		i := strings.IndexByte(hostPort, ']')
		if i < 0 {
			return errtrace.Wrap(errors.New("unclosed IP literal"))
		}
		host, port = hostPort[:i+1], hostPort[i+1:]
		if port != "" {
			if port[0] != ':' {
				return errtrace.Wrap(errors.New("unexpected characters after IP literal"))
			}
			port = port[1:]
		}
	} else if i := strings.IndexByte(hostPort, ':'); i >= 0 {
		host, port = hostPort[:i], hostPort[i+1:]
	}
	parts["host"] = host

	if port == "" {
		return nil
	}
	if !util.IsDigits(port) {
		return errtrace.Wrap(fmt.Errorf("invalid port %q", port))
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 1 || p > 0xFFFF {
		return errtrace.Wrap(fmt.Errorf("port %s is out of range 1-65535", port))
	}
	parts["port"] = p
	return nil
}

// FromParts builds a URI from components.
//
// Components are filtered and the result is validated as if built with the With* transformers.
// A value of an unsupported type fails with [ErrInvalidComponentType],
// a port out of range fails with [ErrInvalidPort].
func FromParts(parts Parts) (URI, error) {
	var (
		u    URI
		strs = map[string]string{}
	)
	for k, v := range parts {
		if k == "port" {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return URI{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidComponentType,
				"component %q must be a string, got %T", k, v))
		}
		strs[k] = s
	}

	port, err := partsPort(parts)
	if err != nil {
		return URI{}, errtrace.Wrap(err)
	}

	u.scheme = filterScheme(strs["scheme"])
	u.userInfo = strs["user"]
	if pass, ok := strs["pass"]; ok {
		u.userInfo += ":" + pass
	}
	u.host = filterHost(strs["host"])
	if u.port, err = filterPort(port, u.scheme); err != nil {
		return URI{}, errtrace.Wrap(err)
	}
	u.path = filterPath(strs["path"])
	u.query = filterQueryOrFragment(strs["query"])
	u.fragment = filterQueryOrFragment(strs["fragment"])
	return errtrace.Wrap2(u.validate())
}

func partsPort(parts Parts) (int, error) {
	v, ok := parts["port"]
	if !ok || v == nil {
		return 0, nil
	}

	var p int64
	switch v := v.(type) {
	case int:
		p = int64(v)
	case int8:
		p = int64(v)
	case int16:
		p = int64(v)
	case int32:
		p = int64(v)
	case int64:
		p = v
	case uint:
		p = int64(min(v, 1<<20))
	case uint8:
		p = int64(v)
	case uint16:
		p = int64(v)
	case uint32:
		p = int64(v)
	case uint64:
		p = int64(min(v, 1<<20))
	case string:
		if v == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPort, "port %q is not a number", v))
		}
		p = int64(n)
	default:
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidComponentType,
			"component \"port\" must be an integer or a string, got %T", v))
	}
	if p < 1 || p > 0xFFFF {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPort, "port %d is out of range 1-65535", p))
	}
	return int(p), nil
}

// FromURL converts a [net/url.URL] into a URI.
// Opaque URLs keep their opaque part as the path.
func FromURL(v *url.URL) (URI, error) {
	if v == nil {
		return URI{}, nil
	}

	parts := Parts{
		"scheme":   v.Scheme,
		"path":     v.EscapedPath(),
		"query":    v.RawQuery,
		"fragment": v.EscapedFragment(),
	}
	if v.Opaque != "" {
		parts["path"] = v.Opaque
	}
	if v.User != nil {
		parts["user"] = v.User.Username()
		if pass, ok := v.User.Password(); ok {
			parts["pass"] = pass
		}
	}
	if v.Host != "" {
		host := v.Host
		if port := v.Port(); port != "" {
			host = strings.TrimSuffix(host, ":"+port)
			parts["port"] = port
		}
		parts["host"] = host
	}
	return errtrace.Wrap2(FromParts(parts))
}

// URL converts u into a [net/url.URL].
func (u URI) URL() (*url.URL, error) {
	v, err := url.Parse(u.String())
	if err != nil {
		return nil, errtrace.Wrap(newMalformedURIErr(err))
	}
	return v, nil
}
