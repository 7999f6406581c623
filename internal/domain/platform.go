package domain

import (
	"net/url"
	"strings"
)

// Platform represents the recognized source site for a video URL
type Platform string

const (
	PlatformYouTube   Platform = "YouTube"
	PlatformInstagram Platform = "Instagram"
	PlatformTikTok    Platform = "TikTok"
	PlatformTwitter   Platform = "Twitter/X"
	PlatformFacebook  Platform = "Facebook"
	PlatformVimeo     Platform = "Vimeo"
	PlatformUnknown   Platform = "Unknown"
)

// platformDomains lists the supported registered domains in classification
// order. First match wins, so both YouTube domains come first.
var platformDomains = []struct {
	domain   string
	platform Platform
}{
	{"youtube.com", PlatformYouTube},
	{"youtu.be", PlatformYouTube},
	{"instagram.com", PlatformInstagram},
	{"tiktok.com", PlatformTikTok},
	{"twitter.com", PlatformTwitter},
	{"x.com", PlatformTwitter},
	{"facebook.com", PlatformFacebook},
	{"vimeo.com", PlatformVimeo},
}

// normalizeHost extracts the lowercased host from a raw URL, stripping a
// single leading "www." label. Returns "" when the input is not an absolute
// URL with both a scheme and a host.
func normalizeHost(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// hostMatches reports whether host is the registered domain itself or a
// subdomain of it. Suffix matching on label boundaries, so a host like
// "youtube.com.attacker.net" does not match.
func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// ValidateURL reports whether raw is an absolute URL on a supported
// platform. Malformed input yields false, never an error.
func ValidateURL(raw string) bool {
	host := normalizeHost(raw)
	if host == "" {
		return false
	}
	for _, p := range platformDomains {
		if hostMatches(host, p.domain) {
			return true
		}
	}
	return false
}

// ClassifyURL names the platform for a video URL. Unrecognized hosts and
// unparseable input both classify as PlatformUnknown.
func ClassifyURL(raw string) Platform {
	host := normalizeHost(raw)
	if host == "" {
		return PlatformUnknown
	}
	for _, p := range platformDomains {
		if hostMatches(host, p.domain) {
			return p.platform
		}
	}
	return PlatformUnknown
}
