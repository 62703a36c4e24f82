package gitbucket

import (
	"net/url"
	"strings"
)

// Encode builds a fully percent-encoded absolute URL from the service root,
// a path relative to it, and an optional query string. Spaces and reserved
// characters in both parts are escaped. On a malformed root it falls back to
// naive concatenation; URL building must never abort a harvest.
func Encode(rootURL, path, query string) string {
	root, err := url.Parse(rootURL)
	if err != nil || root.Scheme == "" {
		if query == "" {
			return rootURL + path
		}
		return rootURL + path + "?" + query
	}

	u := &url.URL{
		Scheme:   root.Scheme,
		User:     root.User,
		Host:     root.Host,
		Path:     root.Path + path,
		RawQuery: encodeQuery(query),
	}
	return u.String()
}

// encodeQuery escapes characters that are not valid in a URI query while
// leaving the query structure (=, &, and friends) intact.
func encodeQuery(query string) string {
	if query == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		c := query[i]
		if isQueryByte(c) {
			b.WriteByte(c)
			continue
		}
		const hex = "0123456789ABCDEF"
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0xf])
	}
	return b.String()
}

// isQueryByte reports whether c may appear unescaped in a query component
// (RFC 3986: unreserved, sub-delims, ':', '@', '/', '?').
func isQueryByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~',
		'!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=',
		':', '@', '/', '?':
		return true
	}
	return false
}
