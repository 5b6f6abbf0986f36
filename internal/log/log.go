// Package log provides the slog loggers used by the uriref command.
package log

//go:generate go tool errtrace -w .

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"braces.dev/errtrace"
	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/uriref/header"
	"github.com/ghettovoice/uriref/internal/constraints"
	"github.com/ghettovoice/uriref/internal/errorutil"
	"github.com/ghettovoice/uriref/uri"
)

const ErrUnknownFormat errorutil.Error = "unknown log format"

// Format names accepted by [New].
const (
	FormatConsole = "console"
	FormatDev     = "dev"
	FormatNone    = "none"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(u uri.URI) slog.Value {
		attrs := []slog.Attr{slog.String("ref", u.String())}
		if u.Scheme() != "" {
			attrs = append(attrs, slog.String("scheme", u.Scheme()))
		}
		if auth := u.Authority(); auth != "" {
			attrs = append(attrs, slog.String("authority", auth))
		}
		if u.Path() != "" {
			attrs = append(attrs, slog.String("path", u.Path()))
		}
		if u.Query() != "" {
			attrs = append(attrs, slog.String("query", u.Query()))
		}
		if u.Fragment() != "" {
			attrs = append(attrs, slog.String("fragment", u.Fragment()))
		}
		return slog.GroupValue(attrs...)
	}),
	slogformatter.FormatByType(func(f header.Field) slog.Value {
		return slog.GroupValue(
			slog.String("name", string(f.Name)),
			slog.String("value", f.Value),
		)
	}),
)

// Def is a default logger.
var Def = slog.New(newConsoleHandler(os.Stderr, slog.LevelDebug))

// Dev is a developer logger.
var Dev = slog.New(newDevHandler(os.Stderr, slog.LevelDebug))

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

// New creates a logger writing to w in the given format
// ("console", "dev" or "none", case-insensitive) with the minimal level.
// A nil w means stderr. Debug loggers on stderr are the shared [Def] and [Dev].
func New(format string, level slog.Level, w io.Writer) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	shared := w == os.Stderr && level == slog.LevelDebug

	switch strings.ToLower(format) {
	case FormatConsole, "":
		if shared {
			return Def, nil
		}
		return slog.New(newConsoleHandler(w, level)), nil
	case FormatDev:
		if shared {
			return Dev, nil
		}
		return slog.New(newDevHandler(w, level)), nil
	case FormatNone:
		return Noop, nil
	default:
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownFormat, "%q", format))
	}
}

// ParseLevel parses a level name such as "debug" or "warn+2".
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, errtrace.Wrap(err)
	}
	return lvl, nil
}

func newConsoleHandler(w io.Writer, level slog.Level) slog.Handler {
	return newHandler(
		console.NewHandler(w, &console.HandlerOptions{
			AddSource:  true,
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		}),
	)
}

func newDevHandler(w io.Writer, level slog.Level) slog.Handler {
	return newHandler(
		devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		}),
	)
}

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

type fmtValue struct {
	v        any
	goSyntax bool
}

func (v fmtValue) LogValue() slog.Value {
	if v.goSyntax {
		return slog.StringValue(fmt.Sprintf("%#v", v.v))
	}
	return slog.StringValue(fmt.Sprintf("%+v", v.v))
}

// FmtValue returns a value logger that formats values using '%+v' or '%#v' syntax.
func FmtValue(v any, goSyntax bool) slog.LogValuer { return fmtValue{v, goSyntax} }

type calcValue struct{ fn func() any }

func (v calcValue) LogValue() slog.Value {
	cv := v.fn()
	switch cv := cv.(type) {
	case slog.Value:
		return cv
	default:
		return slog.AnyValue(cv)
	}
}

// CalcValue returns a value logger that computes a value using a fn.
func CalcValue(fn func() any) slog.LogValuer { return calcValue{fn} }

type stringValue[T constraints.Byteseq] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(string(v.v))
}

// StringValue returns a value logger that formats v as string.
func StringValue[T constraints.Byteseq](v T) slog.LogValuer { return stringValue[T]{v} }
