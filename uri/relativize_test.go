package uri_test

import (
	"testing"

	"github.com/ghettovoice/uriref/uri"
)

func TestRelativize_InvertsResolve(t *testing.T) {
	t.Parallel()

	for _, c := range resolveCases {
		t.Run(c.base+" -> "+c.target, func(t *testing.T) {
			t.Parallel()

			base := uri.MustParse(c.base)
			target := uri.MustParse(c.target)
			rel := uri.Relativize(base, target)
			if rel.String() == c.ref {
				return
			}

			got, err := uri.Resolve(base, rel)
			if err != nil {
				t.Fatalf("uri.Resolve(%q, %q) error = %v, want nil", c.base, rel, err)
			}
			if got.String() != c.target {
				t.Errorf("uri.Relativize(%q, %q) = %q, resolves to %q, want %q", c.base, c.target, rel, got, c.target)
			}
		})
	}
}

func TestRelativize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base, target, want string
	}{
		{"/a/b/?q", "#h", "#h"},
		{"/a/b/?q", "c#h", "c#h"},
		{"http://a", "http://a/", "./"},
		{"urn:a/b?q", "urn:x/y?q", "../x/y?q"},
		// dot-segments of both paths are removed first
		{"/a/b/../c/", "/a/b/..", "../"},
		// target with fewer components than base
		{"http://a/b/", "//a/b/c", "c"},
		{"http://a/b/", "/b/c", "c"},
		{"http://a/b/", "/x/y", "../x/y"},
		{"http://a/b/", "/", "../"},
		// relative target path
		{"http://a/b/", "c", "c"},
		{"http://a/b/", "", ""},
		// different scheme or authority
		{"http://a/b/", "https://a/b/", "https://a/b/"},
		{"http://a/b/", "http://b/c", "//b/c"},
		{"http://a/b/", "http://b", "//b"},
		{"http://a/b?q", "http://a", "//a"},
		{"urn:/a/", "urn:b", "urn:b"},
		{"urn:a", "urn:/b", "/b"},
		// queries and fragments
		{"http://a/b/c?q", "http://a/b/c?q", ""},
		{"http://a/b/c?q", "http://a/b/c?q#f", "#f"},
		{"http://a/b/c?q#f", "http://a/b/c?q", "?q"},
		{"http://a/b/c?q", "http://a/b/c", "c"},
		{"http://a/b/c?q", "http://a/b/c?x", "?x"},
		{"http://a/b/x:y?q", "http://a/b/x:y", "./x:y"},
		// base directory climbing above the root
		{"http://b/../a", "http://b//b", ".//b"},
		{"http://b/x/../../a", "http://b//b/c", ".//b/c"},
	}

	for _, c := range cases {
		t.Run(c.base+" -> "+c.target, func(t *testing.T) {
			t.Parallel()

			base := uri.MustParse(c.base)
			target := uri.MustParse(c.target)
			rel := uri.Relativize(base, target)
			if got := rel.String(); got != c.want {
				t.Errorf("uri.Relativize(%q, %q) = %q, want %q", c.base, c.target, got, c.want)
			}

			want, err := uri.Resolve(base, target)
			if err != nil {
				t.Fatalf("uri.Resolve(%q, %q) error = %v, want nil", c.base, c.target, err)
			}
			got, err := uri.Resolve(base, rel)
			if err != nil {
				t.Fatalf("uri.Resolve(%q, %q) error = %v, want nil", c.base, rel, err)
			}
			if got != want {
				t.Errorf("uri.Resolve(%q, %q) = %q, want %q", c.base, rel, got, want)
			}
		})
	}
}
