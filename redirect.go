package auth

import (
	"net/url"
	"strings"
)

// SafeRedirect validates a post-login redirect candidate. Only same-origin
// targets survive: relative paths are returned as-is, absolute URLs must
// match the configured base origin, and everything else collapses to baseURL
// so the callback parameter cannot be used to bounce users to a foreign site.
func SafeRedirect(baseURL, candidate string) string {
	if candidate == "" {
		return baseURL
	}

	// protocol-relative URLs ("//evil.example") inherit the page scheme and
	// escape the origin
	if strings.HasPrefix(candidate, "//") {
		return baseURL
	}

	if strings.HasPrefix(candidate, "/") {
		return candidate
	}

	target, err := url.Parse(candidate)
	if err != nil {
		return baseURL
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}

	if target.Scheme == base.Scheme && target.Host == base.Host && target.Host != "" {
		return candidate
	}

	return baseURL
}
