package uri

import (
	"strings"

	"github.com/ghettovoice/uriref/internal/grammar"
)

var queryReplacer = strings.NewReplacer("=", "%3D", "&", "%26")

// WithQueryValue returns a copy of u where every query pair whose decoded key equals
// the decoded key is replaced by a single "key=value" pair appended to the query.
// Literal "=" and "&" in key and value are percent-encoded, existing escapes are kept.
func (u URI) WithQueryValue(key, value string) URI {
	return u.WithQuery(appendQueryPair(withoutQueryKey(u.query, key), queryReplacer.Replace(key)+"="+queryReplacer.Replace(value)))
}

// WithQueryKey is like [URI.WithQueryValue] but appends the key without a value.
func (u URI) WithQueryKey(key string) URI {
	return u.WithQuery(appendQueryPair(withoutQueryKey(u.query, key), queryReplacer.Replace(key)))
}

// WithoutQueryValue returns a copy of u without the query pairs whose decoded key equals the decoded key.
func (u URI) WithoutQueryValue(key string) URI {
	if u.query == "" {
		return u
	}
	return u.WithQuery(strings.Join(withoutQueryKey(u.query, key), "&"))
}

func withoutQueryKey(query, key string) []string {
	if query == "" {
		return nil
	}

	key = grammar.Unescape(key)
	var kvs []string
	for _, kv := range strings.Split(query, "&") {
		k, _, _ := strings.Cut(kv, "=")
		if grammar.Unescape(k) != key {
			kvs = append(kvs, kv)
		}
	}
	return kvs
}

func appendQueryPair(kvs []string, kv string) string {
	return strings.Join(append(kvs, kv), "&")
}
