package urlutil

import (
	"errors"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ErrInvalidProtocol is returned when the canonical URL is not http/https.
var ErrInvalidProtocol = errors.New("invalid URL protocol")

// Canonicalize parses, normalizes and validates a target URL.
// The scheme and host are lowercased, the fragment is stripped, and an empty
// path becomes "/". Any URL whose scheme is not http or https is rejected —
// validation happens before a single external call is made.
func Canonicalize(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidProtocol
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidProtocol
	}
	if u.Host == "" {
		return "", ErrInvalidProtocol
	}

	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

// Hostname extracts the hostname from a URL string, without port.
// Returns "" when the URL does not parse.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// RegistrableDomain returns the eTLD+1 for a hostname ("cdn.a.example.co.uk"
// → "example.co.uk"). Returns "" for IPs and hosts without a public suffix.
func RegistrableDomain(host string) string {
	d, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host))
	if err != nil {
		return ""
	}
	return d
}
