package rest

import (
	"github.com/google/go-querystring/query"
)

// QueryString projects a parameter struct onto its canonical query
// string using `url` struct tags. Keys are emitted in sorted order, so
// the same parameter value always produces the same string; paged GET
// URLs are therefore safe to use as idempotency/cache keys upstream.
func QueryString(params any) (string, error) {
	if params == nil {
		return "", nil
	}
	v, err := query.Values(params)
	if err != nil {
		return "", err
	}
	return v.Encode(), nil
}
