// Package hostname normalizes hosts and compares them on DNS label boundaries.
package hostname

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// Normalize lower-cases host, strips a port and a trailing dot, and converts
// internationalized names to their ASCII form. Hosts idna rejects are only lower-cased.
func Normalize(host string) string {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" {
		return ""
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return host
	}
	return ascii
}

// Within reports whether host is domain or one of its subdomains.
func Within(host, domain string) bool {
	host, domain = Normalize(host), Normalize(domain)
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// Registrable returns the last two labels of host.
func Registrable(host string) string {
	host = Normalize(host)
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// SameRegistrable reports whether a and b share their last two labels.
func SameRegistrable(a, b string) bool {
	ra, rb := Registrable(a), Registrable(b)
	return ra != "" && ra == rb
}

// FromURL returns the normalized host of raw, or "" when raw does not parse.
func FromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return Normalize(u.Host)
}
