package scraper

import (
	"net/url"
	"strings"
)

const directoryHost = "architectdirectory.co.uk"

// socialHosts are link targets that belong in the socials list, never in the
// website field.
var socialHosts = map[string]struct{}{
	"twitter.com":   {},
	"x.com":         {},
	"instagram.com": {},
	"facebook.com":  {},
	"fb.com":        {},
	"linkedin.com":  {},
	"youtube.com":   {},
	"pinterest.com": {},
	"tiktok.com":    {},
}

func normalizedHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(strings.TrimSpace(u.Host))
	return strings.TrimPrefix(host, "www.")
}

// isSocialURL reports whether href points at a known social network.
func isSocialURL(href string) bool {
	if !strings.HasPrefix(href, "http") {
		return false
	}
	host := normalizedHost(href)
	if host == "" || strings.Contains(host, directoryHost) {
		return false
	}
	_, ok := socialHosts[host]
	return ok
}

// isWebsiteCandidate reports whether href can serve as the practice website:
// an absolute external link that is neither the directory itself nor a
// social network.
func isWebsiteCandidate(href string) bool {
	if !strings.HasPrefix(href, "http") {
		return false
	}
	host := normalizedHost(href)
	if host == "" || strings.Contains(host, directoryHost) {
		return false
	}
	_, social := socialHosts[host]
	return !social
}
