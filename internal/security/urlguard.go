// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package security guards outbound HTTP against SSRF. Profile URLs arrive
// from untrusted clients and are forwarded upstream, so both the URL string
// and the dialed address are checked.
package security

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doyensec/safeurl"
)

var allowedSchemes = []string{"http", "https"}

// blockedNetworks is parsed once at package init and consulted by
// ValidateURL. The outbound client additionally validates resolved IPs at
// dial time, which also covers DNS rebinding.
var blockedNetworks []net.IPNet

func init() {
	cidrs := []string{
		// Private ranges (RFC 1918).
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		// Loopback.
		"127.0.0.0/8",
		// Link-local, including the cloud metadata address 169.254.169.254.
		"169.254.0.0/16",
		// Current network.
		"0.0.0.0/8",
		// IPv6 loopback, link-local, unique-local.
		"::1/128",
		"fe80::/10",
		"fc00::/7",
	}
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(fmt.Sprintf("invalid CIDR in blockedNetworks: %s: %v", cidr, err))
		}
		blockedNetworks = append(blockedNetworks, *network)
	}
}

// NewOutboundClient returns an HTTP client whose dialer rejects connections
// to private, loopback, link-local, and metadata addresses. safeurl validates
// the IP after DNS resolution, so a hostname that resolves to a blocked range
// is refused even when it passes the static check.
func NewOutboundClient(timeout time.Duration) *http.Client {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes(allowedSchemes...).
		SetAllowedPorts(80, 443).
		Build()

	return safeurl.Client(config).Client
}

// ValidateURL statically checks a client-supplied URL before it is forwarded
// anywhere: scheme must be http or https, the host must be non-empty, and
// literal IPs or hostnames in blocked ranges are rejected. DNS is not
// resolved here; NewOutboundClient covers the post-resolution case.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if !isAllowedScheme(scheme) {
		return fmt.Errorf("disallowed scheme: %s (allowed: %v)", scheme, allowedSchemes)
	}

	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("empty host in URL: %s", rawURL)
	}

	if ip := net.ParseIP(host); ip != nil {
		if isBlockedIP(ip) {
			return fmt.Errorf("blocked IP address: %s", ip.String())
		}
		return nil
	}

	if strings.EqualFold(host, "localhost") {
		return fmt.Errorf("blocked host: %s", host)
	}

	return nil
}

func isAllowedScheme(scheme string) bool {
	for _, allowed := range allowedSchemes {
		if strings.EqualFold(scheme, allowed) {
			return true
		}
	}
	return false
}

func isBlockedIP(ip net.IP) bool {
	for _, network := range blockedNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
