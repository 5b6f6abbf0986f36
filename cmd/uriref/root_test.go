package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/goleak"

	"github.com/ghettovoice/uriref/header"
	"github.com/ghettovoice/uriref/internal/log"
	"github.com/ghettovoice/uriref/uri"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd, _ := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCommands(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			"parse",
			"",
			[]string{"parse", "HTTP://User@Example.COM:80/a%20b?q#f"},
			"uri:\thttp://User@example.com/a%20b?q#f\n" +
				"scheme:\thttp\n" +
				"userinfo:\tUser\n" +
				"host:\texample.com\n" +
				"port:\t\n" +
				"path:\t/a%20b\n" +
				"query:\tq\n" +
				"fragment:\tf\n",
		},
		{
			"parse many",
			"",
			[]string{"parse", "//h:8080", "g"},
			"uri:\t//h:8080\nscheme:\t\nuserinfo:\t\nhost:\th\nport:\t8080\npath:\t\nquery:\t\nfragment:\t\n" +
				"\n" +
				"uri:\tg\nscheme:\t\nuserinfo:\t\nhost:\t\nport:\t\npath:\tg\nquery:\t\nfragment:\t\n",
		},
		{
			"resolve",
			"",
			[]string{"resolve", "http://a/b/c/d;p?q", "g", "../g", "#s", "g:h"},
			"http://a/b/c/g\nhttp://a/b/g\nhttp://a/b/c/d;p?q#s\ng:h\n",
		},
		{
			"relativize",
			"",
			[]string{"relativize", "http://a/b/c/d;p?q", "http://a/b/c/g", "http://a/b/g", "http://x/y"},
			"g\n../g\n//x/y\n",
		},
		{
			"relativize normalized",
			"",
			[]string{"relativize", "-n", "preserving", "HTTP://A:80/b/./c/d", "http://a/b/c/%7ee"},
			"~e\n",
		},
		{
			"normalize preserving",
			"",
			[]string{"normalize", "HTTP://example.com:80/a/./b/../c/%7euser"},
			"http://example.com/a/c/~user\n",
		},
		{
			"normalize selected",
			"",
			[]string{"normalize", "-n", "remove-duplicate-slashes,sort-query-parameters", "http://x//a//b?z&a"},
			"http://x/a/b?a&z\n",
		},
		{
			"equivalent",
			"",
			[]string{"equivalent", "http://example.com", "http://example.com:80/"},
			"true\n",
		},
		{
			"not equivalent",
			"",
			[]string{"equivalent", "http://a/b", "http://a/c"},
			"false\n",
		},
		{
			"headers",
			"Host: a\r\nX-Y:  b \r\n folded\r\n\r\n",
			[]string{"headers"},
			"Host: a\r\nX-Y: b folded\r\n",
		},
		{
			"headers get",
			"Host: a\nAccept: x\naccept: y\n",
			[]string{"headers", "--get", "ACCEPT"},
			"Accept: x\r\naccept: y\r\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, stderr, err := execute(t, c.stdin, c.args...)
			if err != nil {
				t.Fatalf("execute(%q) error = %v, want nil", c.args, err)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("execute(%q) stdout diff (-got +want):\n%v", c.args, diff)
			}
			if stderr != "" {
				t.Errorf("execute(%q) stderr = %q, want empty", c.args, stderr)
			}
		})
	}
}

func TestCommands_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		stdin   string
		args    []string
		wantErr error
		wantMsg string
	}{
		{"malformed uri", "", []string{"parse", "//"}, uri.ErrMalformedURI, ""},
		{"malformed base", "", []string{"resolve", "http://a:99999", "g"}, uri.ErrMalformedURI, "base"},
		{"invalid resolved path", "", []string{"resolve", "/a", ".//x"}, uri.ErrInvalidPathForAuthority, ""},
		{"unknown normalization", "", []string{"normalize", "-n", "bogus", "http://a"}, nil, "unknown normalization"},
		{"empty headers", "", []string{"headers"}, header.ErrEmptyInput, ""},
		{"bad header", "no colon\r\n", []string{"headers"}, header.ErrMalformedInput, ""},
		{"bad log format", "", []string{"--log-format", "xml", "parse", "a"}, log.ErrUnknownFormat, "--log-format"},
		{"bad log level", "", []string{"--log-level", "loud", "parse", "a"}, nil, "--log-level"},
		{"missing args", "", []string{"resolve", "http://a"}, nil, "requires at least 2 arg(s)"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, c.stdin, c.args...)
			if err == nil {
				t.Fatalf("execute(%q) error = nil, want error", c.args)
			}
			if c.wantErr != nil {
				if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
					t.Errorf("execute(%q) error = %v, want %v", c.args, err, c.wantErr)
				}
			}
			if !strings.Contains(err.Error(), c.wantMsg) {
				t.Errorf("execute(%q) error = %q, want containing %q", c.args, err, c.wantMsg)
			}
		})
	}
}

func TestCommands_Logging(t *testing.T) {
	t.Parallel()

	_, stderr, err := execute(t, "", "--log-format", "console", "--log-level", "debug", "resolve", "http://a/b", "c")
	if err != nil {
		t.Fatalf("execute() error = %v, want nil", err)
	}
	if !strings.Contains(stderr, "resolved") {
		t.Errorf("stderr = %q, want the debug record", stderr)
	}

	_, stderr, err = execute(t, "", "--log-format", "none", "--log-level", "debug", "resolve", "http://a/b", "c")
	if err != nil {
		t.Fatalf("execute() error = %v, want nil", err)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty", stderr)
	}
}

func TestCommands_LoggedAttrs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		stdin string
		args  []string
		want  []string
	}{
		{"parse", "", []string{"parse", "https://a/b"}, []string{"parsed", "default_port", "443"}},
		{"normalize", "", []string{"normalize", "http://a/./b"}, []string{"normalizing", "flags", "capitalize-percent-encoding", "remove-dot-segments"}},
		{"headers", "Host: a\r\n", []string{"headers"}, []string{"split header block", "raw", "Host: a"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"--log-format", "console", "--log-level", "debug"}, c.args...)
			_, stderr, err := execute(t, c.stdin, args...)
			if err != nil {
				t.Fatalf("execute(%q) error = %v, want nil", args, err)
			}
			for _, w := range c.want {
				if !strings.Contains(stderr, w) {
					t.Errorf("stderr = %q, want containing %q", stderr, w)
				}
			}
		})
	}
}

func TestParseNormalizeFlags(t *testing.T) {
	t.Parallel()

	got, err := parseNormalizeFlags([]string{"remove-default-port", " Sort-Query-Parameters "})
	if err != nil {
		t.Fatalf("parseNormalizeFlags() error = %v, want nil", err)
	}
	if want := uri.RemoveDefaultPort | uri.SortQueryParameters; got != want {
		t.Errorf("parseNormalizeFlags() = %v, want %v", got, want)
	}

	if _, err := parseNormalizeFlags([]string{"nope"}); err == nil {
		t.Errorf("parseNormalizeFlags([nope]) error = %v, want error", err)
	}
}
