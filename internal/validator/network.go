// Package validator holds input validation helpers for template payloads.
package validator

import (
	"net/netip"
	"regexp"
	"strings"
)

var labelRe = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)
var numericRe = regexp.MustCompile(`^[0-9]+$`)

// IsValidHostname checks an RFC1035-style hostname: labels of at most 63
// characters, 253 characters total, no leading or trailing hyphens, and a
// non-numeric final label. A single trailing dot is allowed.
func IsValidHostname(hostname string) bool {
	if hostname == "" {
		return false
	}

	// Strip one trailing dot (fully-qualified form).
	hostname = strings.TrimSuffix(hostname, ".")
	if hostname == "" || len(hostname) > 253 {
		return false
	}

	labels := strings.Split(hostname, ".")
	for _, label := range labels {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if !labelRe.MatchString(label) {
			return false
		}
	}

	// The TLD must not be all-numeric to avoid colliding with IPv4 notation.
	if numericRe.MatchString(labels[len(labels)-1]) {
		return false
	}

	return true
}

// IsValidCIDR reports whether s parses as an IPv4 network prefix.
func IsValidCIDR(s string) bool {
	p, err := netip.ParsePrefix(s)
	return err == nil && p.Addr().Is4()
}

// CIDRContains reports whether inner is fully contained within outer.
func CIDRContains(outer, inner string) bool {
	op, err := netip.ParsePrefix(outer)
	if err != nil {
		return false
	}
	ip, err := netip.ParsePrefix(inner)
	if err != nil {
		return false
	}
	return op.Bits() <= ip.Bits() && op.Contains(ip.Addr())
}
