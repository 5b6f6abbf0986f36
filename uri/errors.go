package uri

import "github.com/ghettovoice/uriref/internal/errorutil"

// Error is the type of the sentinel errors returned by this package.
// Returned errors wrap one of the constants below and should be matched with [errors.Is].
type Error = errorutil.Error

const (
	// ErrMalformedURI is returned when a string cannot be decomposed into URI components.
	ErrMalformedURI Error = "malformed URI"
	// ErrInvalidComponentType is returned by [FromParts] for a component of an unsupported type.
	ErrInvalidComponentType Error = "invalid component type"
	// ErrInvalidPort is returned when a port is outside of the range 1-65535.
	ErrInvalidPort Error = "invalid port"
	// ErrInvalidPathForAuthority is returned when the path conflicts with the presence or absence of an authority.
	ErrInvalidPathForAuthority Error = "invalid path for authority"
	// ErrInvalidRelativePath is returned when a relative-path reference has a colon in its first segment.
	ErrInvalidRelativePath Error = "invalid relative path"
)

func newMalformedURIErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedURI, args...) //errtrace:skip
}
