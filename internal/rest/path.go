package rest

import (
	"net/url"
	"strconv"
	"strings"
)

// JoinPath joins route segments into a relative request path, escaping
// each segment so identifiers can never break out of their position in
// the route. Empty segments are dropped.
//
// All path construction in the service layer goes through JoinPath;
// services never interpolate identifiers into route strings themselves.
func JoinPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s == "" {
			continue
		}
		// A literal route segment may itself contain slashes
		// ("amenities/all"); escape between them, not across them.
		sub := strings.Split(s, "/")
		for i, p := range sub {
			sub[i] = url.PathEscape(p)
		}
		parts = append(parts, strings.Join(sub, "/"))
	}
	return strings.Join(parts, "/")
}

// ID formats a numeric identifier for use as a path segment.
func ID(id int64) string {
	return strconv.FormatInt(id, 10)
}
