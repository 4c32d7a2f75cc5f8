// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package cookie

import (
	"net/http"
	"net/url"
	"strings"
)

// httpJar adapts an http.CookieJar to the Jar interface.
type httpJar struct {
	jar http.CookieJar
}

// FromHTTP adapts an arbitrary http.CookieJar, e.g. from net/http/cookiejar,
// so that it can be used with a redirect chain.  The order of cookies in the
// Cookie header is whatever order the wrapped jar returns.
//
// If jar is already a Jar, it is returned as is.  If jar is nil, this
// function returns nil.
func FromHTTP(jar http.CookieJar) Jar {
	switch j := jar.(type) {
	case nil:
		return nil

	case Jar:
		return j

	default:
		return httpJar{jar: j}
	}
}

func (hj httpJar) CookiesFor(u *url.URL) string {
	cookies := hj.jar.Cookies(u)
	if len(cookies) == 0 {
		return ""
	}

	values := make([]string, 0, len(cookies))
	for _, c := range cookies {
		values = append(values, c.Name+"="+c.Value)
	}

	return strings.Join(values, "; ")
}

func (hj httpJar) Store(u *url.URL, h http.Header) {
	if cookies := ParseSetCookies(h); len(cookies) > 0 {
		hj.jar.SetCookies(u, cookies)
	}
}
