// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package cookie provides the cookie jar consumed by a redirect chain.

A Jar has exactly two operations.  Store is called with every response a
chain receives and records each Set-Cookie header.  CookiesFor produces the
value of the Cookie header for the next request:

	jar := cookie.New(cookie.Options{})
	jar.Store(u, response.Header)
	next.Header.Set("Cookie", jar.CookiesFor(next.URL))

Cookies are keyed by (domain, path, name).  A later Set-Cookie for an existing
key replaces the value but keeps the cookie's position, so the Cookie header
lists cookies in the order they were first stored.

Set implements both Jar and http.CookieJar.  FromHTTP adapts any other
http.CookieJar, such as one from net/http/cookiejar.

Storage is pluggable.  The default keeps cookies in memory.  The sqlitestore
subpackage persists them across process restarts.
*/
package cookie
