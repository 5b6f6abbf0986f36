package header

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/errorutil"
	"github.com/ghettovoice/uriref/internal/grammar"
	"github.com/ghettovoice/uriref/internal/ioutil"
	"github.com/ghettovoice/uriref/internal/util"
)

// Error is the type of the sentinel errors returned by this package.
type Error = grammar.Error

const (
	// ErrEmptyInput is returned for an empty header block or field line.
	ErrEmptyInput = grammar.ErrEmptyInput
	// ErrMalformedInput is returned when a line does not match the header-field grammar.
	ErrMalformedInput = grammar.ErrMalformedInput
)

// Name is a header field name.
type Name string

// IsValid reports whether the name is a non-empty RFC 7230 token.
func (n Name) IsValid() bool { return grammar.IsToken(n) }

// Equal reports whether val is a Name (or string) equal to n ignoring case.
func (n Name) Equal(val any) bool {
	switch v := val.(type) {
	case Name:
		return util.EqFold(n, v)
	case *Name:
		return v != nil && util.EqFold(n, *v)
	case string:
		return util.EqFold(n, v)
	default:
		return false
	}
}

// Field is a single header field.
// Name is kept as received, Value has its surrounding whitespace trimmed and obs-folds unfolded.
type Field struct {
	Name  Name
	Value string
}

// RenderTo writes the field as "Name: Value" without the line terminator.
func (f Field) RenderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	cw.WriteStrings(string(f.Name), ": ", f.Value)
	return errtrace.Wrap2(cw.Result())
}

// String returns the field as "Name: Value".
func (f Field) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	f.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// Format implements fmt.Formatter.
// Verbs 's' and 'q' print "Name: Value", other verbs print the struct fields.
func (f Field) Format(fs fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(fs, f.String())
		return
	case 'q':
		fmt.Fprint(fs, strconv.Quote(f.String()))
		return
	default:
		type hideMethods Field
		type Field hideMethods
		fmt.Fprintf(fs, fmt.FormatString(fs, verb), Field(f))
		return
	}
}

// Equal reports whether val is a Field with the same name (ignoring case) and value.
func (f Field) Equal(val any) bool {
	var other Field
	switch v := val.(type) {
	case Field:
		other = v
	case *Field:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return f.Name.Equal(other.Name) && f.Value == other.Value
}

// Fields is an ordered list of header fields.
type Fields []Field

// Get returns the value of the first field named name (case-insensitive).
func (fs Fields) Get(name Name) (string, bool) {
	for i := range fs {
		if fs[i].Name.Equal(name) {
			return fs[i].Value, true
		}
	}
	return "", false
}

// Values returns the values of all fields named name (case-insensitive) in order.
func (fs Fields) Values(name Name) []string {
	var vals []string
	for i := range fs {
		if fs[i].Name.Equal(name) {
			vals = append(vals, fs[i].Value)
		}
	}
	return vals
}

// Has reports whether at least one field is named name (case-insensitive).
func (fs Fields) Has(name Name) bool {
	_, ok := fs.Get(name)
	return ok
}

// RenderTo writes each field followed by CRLF.
func (fs Fields) RenderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	for i := range fs {
		cw.Call(fs[i].RenderTo)
		cw.WriteStrings("\r\n")
	}
	return errtrace.Wrap2(cw.Result())
}

// String returns the fields as rendered by [Fields.RenderTo].
func (fs Fields) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	fs.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// ParseField parses a single header field line.
// The trailing CRLF (or bare LF) is optional.
func ParseField[T ~string | ~[]byte](line T) (Field, error) {
	if len(line) == 0 {
		return Field{}, errtrace.Wrap(ErrEmptyInput)
	}

	s := string(line)
	s = strings.TrimSuffix(strings.TrimSuffix(s, "\n"), "\r")
	name, value, err := grammar.ParseHeaderField(s + "\r\n")
	if err != nil {
		return Field{}, errtrace.Wrap(err)
	}
	return Field{Name: Name(name), Value: trimOWS(value)}, nil
}

// Split splits a raw header block into fields.
//
// Lines may end with CRLF or a bare LF. A line starting with SP or HTAB continues
// the previous one (obsolete line folding), the fold is replaced with a single space.
// The block ends at the first empty line or at the end of input.
// Every malformed line is reported, wrapped with [ErrMalformedInput].
func Split[T ~string | ~[]byte](raw T) (Fields, error) {
	if len(raw) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}

	var (
		lines []string
		errs  []error
	)
	for n, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			break
		}
		if line[0] == ' ' || line[0] == '\t' {
			if len(lines) == 0 {
				errs = append(errs, errorutil.NewWrapperError(ErrMalformedInput,
					"line %d: continuation without a preceding field", n+1))
				continue
			}
			lines[len(lines)-1] = strings.TrimRight(lines[len(lines)-1], " \t") + " " + trimOWS(line)
			continue
		}
		lines = append(lines, line)
	}

	fs := make(Fields, 0, len(lines))
	for i, line := range lines {
		f, err := ParseField(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %d %q: %w", i+1, line, err))
			continue
		}
		fs = append(fs, f)
	}
	if err := errorutil.JoinPrefix("split header block:", errs...); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return fs, nil
}

func trimOWS(s string) string { return strings.Trim(s, " \t") }
