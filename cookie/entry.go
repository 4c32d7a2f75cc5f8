// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package cookie

import (
	"net/http"
	"strings"
	"time"
)

// Key uniquely identifies a cookie within a jar.
type Key struct {
	Domain string
	Path   string
	Name   string
}

// Entry is a single stored cookie.
type Entry struct {
	// Domain is the canonical host (for host-only cookies) or the domain the
	// cookie is scoped to.  It never has a leading dot.
	Domain string

	// Path is the cookie's path attribute, or the default path computed
	// from the request URL.  It always begins with a slash.
	Path string

	Name  string
	Value string

	// HostOnly is true when the cookie had no Domain attribute, in which case
	// it is only sent to exactly Domain.
	HostOnly bool

	Secure   bool
	HttpOnly bool

	// Expires is the zero time for session cookies.
	Expires time.Time
}

// Key returns the (domain, path, name) tuple for this entry.
func (e Entry) Key() Key {
	return Key{
		Domain: e.Domain,
		Path:   e.Path,
		Name:   e.Name,
	}
}

// Expired tests if this entry has an expiry that is not after now.
func (e Entry) Expired(now time.Time) bool {
	return !e.Expires.IsZero() && !e.Expires.After(now)
}

// Cookie converts this entry to an *http.Cookie suitable for a request.
func (e Entry) Cookie() *http.Cookie {
	return &http.Cookie{
		Name:  e.Name,
		Value: e.Value,
	}
}

// domainMatch implements RFC 6265 section 5.1.3, taking HostOnly into account.
func (e Entry) domainMatch(host string) bool {
	if e.Domain == host {
		return true
	}

	return !e.HostOnly && strings.HasSuffix(host, "."+e.Domain) && !isIP(host)
}

// pathMatch implements RFC 6265 section 5.1.4.
func (e Entry) pathMatch(requestPath string) bool {
	if requestPath == e.Path {
		return true
	}

	if strings.HasPrefix(requestPath, e.Path) {
		if e.Path[len(e.Path)-1] == '/' {
			return true
		} else if requestPath[len(e.Path)] == '/' {
			return true
		}
	}

	return false
}

// matches tests if this entry should be sent with a request to the given
// canonical host, path, and secure transport.
func (e Entry) matches(host, requestPath string, secure bool) bool {
	return e.domainMatch(host) && e.pathMatch(requestPath) && (secure || !e.Secure)
}

// defaultPath computes the RFC 6265 section 5.1.4 default-path of a request path.
func defaultPath(requestPath string) string {
	if len(requestPath) == 0 || requestPath[0] != '/' {
		return "/"
	}

	i := strings.LastIndex(requestPath, "/")
	if i == 0 {
		return "/"
	}

	return requestPath[:i]
}
