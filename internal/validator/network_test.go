package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidHostname(t *testing.T) {
	valid := []string{
		"example.com",
		"sub.example.com",
		"localhost",
		"my-site123.org",
		"a.co",
		"example.co.uk",
		"example.com.", // with trailing dot
		"xn--d1acpjx3f.xn--p1ai",
		"example",
		"example-host-1",
	}
	for _, h := range valid {
		assert.True(t, IsValidHostname(h), "expected valid: %s", h)
	}

	invalid := []string{
		"",                // empty string
		"-example.com",    // starts with a hyphen
		"example-.com",    // ends with a hyphen
		"exa_mple.com",    // underscore is invalid
		"example..com",    // double dot
		"123.456.789.0",   // all numeric TLD
		"example.123",     // numeric TLD
		strings.Repeat("a", 64) + ".com",  // label too long
		strings.Repeat("a", 254) + ".com", // hostname too long
		"example!.com",    // special character
	}
	for _, h := range invalid {
		assert.False(t, IsValidHostname(h), "expected invalid: %s", h)
	}
}

func TestIsValidHostnameTrailingDot(t *testing.T) {
	assert.True(t, IsValidHostname("example.com."))
	assert.False(t, IsValidHostname("example..com."))
}

func TestIsValidHostnameNumericTLD(t *testing.T) {
	assert.False(t, IsValidHostname("example.123"))
	assert.True(t, IsValidHostname("123.example"))
}

func TestIsValidCIDR(t *testing.T) {
	assert.True(t, IsValidCIDR("192.168.0.0/16"))
	assert.True(t, IsValidCIDR("10.0.1.0/24"))
	assert.False(t, IsValidCIDR("192.168.0.0"))
	assert.False(t, IsValidCIDR("not-a-cidr"))
	assert.False(t, IsValidCIDR(""))
}

func TestCIDRContains(t *testing.T) {
	assert.True(t, CIDRContains("192.168.0.0/16", "192.168.1.0/24"))
	assert.True(t, CIDRContains("10.0.0.0/8", "10.250.0.0/24"))
	assert.False(t, CIDRContains("192.168.0.0/16", "10.0.1.0/24"))
	assert.False(t, CIDRContains("192.168.1.0/24", "192.168.0.0/16")) // inner wider than outer
	assert.False(t, CIDRContains("bogus", "192.168.1.0/24"))
	assert.False(t, CIDRContains("192.168.0.0/16", "bogus"))
}
