package uri_test

import (
	"testing"

	"github.com/ghettovoice/uriref/uri"
)

func TestURI_QueryValues(t *testing.T) {
	t.Parallel()

	var u uri.URI
	u = u.WithQueryValue("a", "b")
	u = u.WithQueryValue("c", "d")
	u = u.WithQueryKey("e")
	if got, want := u.Query(), "a=b&c=d&e"; got != want {
		t.Fatalf("u.Query() = %q, want %q", got, want)
	}

	steps := []struct {
		key, want string
	}{
		{"c", "a=b&e"},
		{"e", "a=b"},
		{"a", ""},
	}
	for _, s := range steps {
		u = u.WithoutQueryValue(s.key)
		if got := u.Query(); got != s.want {
			t.Errorf("u.WithoutQueryValue(%q).Query() = %q, want %q", s.key, got, s.want)
		}
	}
}

func TestURI_WithQueryValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		query      string
		key, value string
		want       string
	}{
		{"replaces same keys", "a=b&c=d", "a", "e", "c=d&a=e"},
		{"replaces all same keys", "a=b&a=c&d=e", "a", "f", "d=e&a=f"},
		{"escapes special chars", "", "E=mc^2", "ein&stein", "E%3Dmc%5E2=ein%26stein"},
		{"keeps escaped chars", "", "E%3Dmc%5e2", "ein%26stein", "E%3Dmc%5e2=ein%26stein"},
		{"replaces encoded key", "E%3Dmc%5E2=x&foo=bar", "E=mc^2", "y", "foo=bar&E%3Dmc%5E2=y"},
		{"empty value", "a=b", "c", "", "a=b&c="},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			u := uri.URI{}.WithQuery(c.query).WithQueryValue(c.key, c.value)
			if got := u.Query(); got != c.want {
				t.Errorf("u.WithQueryValue(%q, %q).Query() = %q, want %q", c.key, c.value, got, c.want)
			}
		})
	}
}

func TestURI_WithoutQueryValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		query string
		key   string
		want  string
	}{
		{"decoded key", "E%3dmc%5E2=einstein&foo=bar", "E=mc^2", "foo=bar"},
		{"encoded key", "E%3dmc%5E2=einstein&foo=bar", "E%3Dmc%5e2", "foo=bar"},
		{"missing key", "a=b", "c", "a=b"},
		{"empty query", "", "a", ""},
		{"key without value", "a&b=c", "a", "b=c"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			u := uri.URI{}.WithQuery(c.query).WithoutQueryValue(c.key)
			if got := u.Query(); got != c.want {
				t.Errorf("u.WithoutQueryValue(%q).Query() = %q, want %q", c.key, got, c.want)
			}
		})
	}
}
