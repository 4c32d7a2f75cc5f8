// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"net/http"
)

// CheckRedirect is the type expected by http.Client.CheckRedirect.
type CheckRedirect func(*http.Request, []*http.Request) error

// UseLastResponse is a CheckRedirect that halts net/http's own redirect
// handling.  The 3xx response is handed back to the caller with its Body
// intact, which is what a redirect.Follower needs to see each hop.
func UseLastResponse(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

var _ CheckRedirect = UseLastResponse

// NewHTTPClient creates an *http.Client that executes exactly one HTTP
// transaction per Do call.  Redirects are never followed and no cookie
// jar is attached, since both concerns belong to the redirect layer.
//
// If rt is nil, http.DefaultTransport is used.
func NewHTTPClient(rt http.RoundTripper) *http.Client {
	if rt == nil {
		rt = http.DefaultTransport
	}

	return &http.Client{
		Transport:     rt,
		CheckRedirect: UseLastResponse,
	}
}

// SingleHop returns a shallow copy of c that never follows redirects and
// has no cookie jar.  The Transport and Timeout of c are preserved.  If c
// is nil, this function is equivalent to NewHTTPClient(nil).
func SingleHop(c *http.Client) *http.Client {
	if c == nil {
		return NewHTTPClient(nil)
	}

	clone := *c
	clone.CheckRedirect = UseLastResponse
	clone.Jar = nil
	return &clone
}
