package client

import (
	"net/url"
	"regexp"
	"strings"
)

const DefaultPrefixSegment = "/api"

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// IsAbsoluteURL reports whether p carries an http or https scheme.
func IsAbsoluteURL(p string) bool {
	return absoluteURL.MatchString(p)
}

// NormalizePath turns a call-site path into the path sent after base.
// Absolute URLs are returned untouched. Relative paths get a leading slash,
// and when base already ends with prefix every leading copy of prefix is
// stripped from the path, so the result never doubles it.
func NormalizePath(base, prefix, p string) string {
	if IsAbsoluteURL(p) {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" || !hasSuffixFold(strings.TrimRight(base, "/"), prefix) {
		return p
	}

	for {
		rest, ok := cutSegmentFold(p, prefix)
		if !ok {
			return p
		}
		p = rest
	}
}

// cutSegmentFold strips prefix from p when it is a whole leading path segment.
func cutSegmentFold(p, prefix string) (string, bool) {
	if len(p) < len(prefix) || !strings.EqualFold(p[:len(prefix)], prefix) {
		return p, false
	}
	rest := p[len(prefix):]
	switch {
	case rest == "":
		return "/", true
	case rest[0] == '/':
		return rest, true
	case rest[0] == '?' || rest[0] == '#':
		return "/" + rest, true
	}
	return p, false
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

// joinURL appends the normalized path and query to base.
func joinURL(base, prefix, p string, query url.Values) string {
	var target string
	if IsAbsoluteURL(p) {
		target = p
	} else {
		target = strings.TrimRight(base, "/") + NormalizePath(base, prefix, p)
	}

	if len(query) == 0 {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + query.Encode()
}
