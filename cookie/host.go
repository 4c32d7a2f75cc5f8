// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package cookie

import (
	"errors"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

var (
	errNoHost        = errors.New("cookie: URL has no host")
	errIllegalDomain = errors.New("cookie: illegal cookie domain attribute")
	errPublicSuffix  = errors.New("cookie: domain attribute is a public suffix")
)

func isIP(host string) bool {
	return net.ParseIP(host) != nil
}

// canonicalHost returns the lowercased, ASCII form of a URL's hostname.
// Ports and IPv6 brackets are removed.
func canonicalHost(u *url.URL) (string, error) {
	host := u.Hostname()
	if len(host) == 0 {
		return "", errNoHost
	}

	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if isIP(host) {
		return host, nil
	}

	return idna.ToASCII(host)
}

// IsSecure tests if cookies marked Secure may be sent to the given URL.
func IsSecure(u *url.URL) bool {
	switch strings.ToLower(u.Scheme) {
	case "https", "wss":
		return true
	default:
		return false
	}
}

// scope determines the Domain and HostOnly fields for a cookie received from
// host.  The domain attribute may be empty, in which case the cookie is host-only.
func scope(host, domainAttr string) (domain string, hostOnly bool, err error) {
	if len(domainAttr) == 0 {
		return host, true, nil
	}

	domain = strings.ToLower(strings.TrimPrefix(domainAttr, "."))
	if len(domain) == 0 || strings.HasSuffix(domain, ".") {
		return "", false, errIllegalDomain
	}

	if isIP(host) {
		// IP addresses never get domain cookies
		if domain != host {
			return "", false, errIllegalDomain
		}

		return host, true, nil
	}

	if domain, err = idna.ToASCII(domain); err != nil {
		return "", false, errIllegalDomain
	}

	if ps, _ := publicsuffix.PublicSuffix(domain); ps == domain {
		// a Domain=<public suffix> cookie is only acceptable as host-only for that exact host
		if host == domain {
			return host, true, nil
		}

		return "", false, errPublicSuffix
	}

	if host != domain && !strings.HasSuffix(host, "."+domain) {
		return "", false, errIllegalDomain
	}

	return domain, false, nil
}
