package app

import (
	"net/url"
	"strings"

	"github.com/foliolabs/core/internal/config"
)

// originPatterns builds the allow-list for production CORS checks. The
// site's own base URL is always admitted alongside the configured origins,
// and full-URL entries collapse to their host so "https://example.com" and
// "example.com" behave the same.
func originPatterns(cfg *config.AppConfig) []string {
	patterns := make([]string, 0, len(cfg.AllowedOrigins)+1)
	if host := originHost(cfg.Site.BaseURL); host != "" {
		patterns = append(patterns, host)
	}
	for _, entry := range cfg.AllowedOrigins {
		if host := originHost(entry); host != "" {
			patterns = append(patterns, host)
		}
	}
	return patterns
}

// originAllowed reports whether the request origin matches any pattern.
func originAllowed(patterns []string, origin string) bool {
	host := originHost(origin)
	for _, pattern := range patterns {
		if matchOrigin(pattern, host) {
			return true
		}
	}
	return false
}

// originHost returns the "host[:port]" portion of an origin URL. Bare
// hosts and wildcard patterns pass through unchanged.
func originHost(origin string) string {
	origin = strings.TrimSpace(origin)
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

// matchOrigin supports exact hosts, "*.domain" suffix wildcards, and
// "host:*" port wildcards.
func matchOrigin(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
