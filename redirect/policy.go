// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redirect

import (
	"net/http"
	"net/url"
	"strings"
)

// IsRedirect tests if the given status code is one this package follows:
// 301, 302, 303, 307, or 308.
func IsRedirect(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true

	default:
		return false
	}
}

// SensitiveHeaders are stripped from a hop whose host differs from the
// host of the original request.
var SensitiveHeaders = []string{
	"Authorization",
	"Www-Authenticate",
	"Cookie",
	"Cookie2",
}

// ContentHeaders describe a request body, and are stripped whenever a
// redirect drops the body.
var ContentHeaders = []string{
	"Content-Type",
	"Content-Length",
	"Content-Encoding",
	"Transfer-Encoding",
}

// Input is everything a Policy has available to decide how to follow a redirect.
type Input struct {
	// StatusCode is the redirect status code.
	StatusCode int

	// Method is the method of the request that produced the redirect.
	Method string

	// Header is the header of the redirect response.
	Header http.Header

	// Original is the URL of the first request in the chain.
	Original *url.URL

	// Current is the URL of the request that produced the redirect.
	Current *url.URL

	// Target is the resolved Location of the redirect.
	Target *url.URL

	// AllowCrossProtocol indicates whether a scheme change is allowed for this call.
	AllowCrossProtocol bool
}

// Decision describes how the next hop of a chain is built.
type Decision struct {
	// Proceed is false when the redirect must not be followed.  This is a
	// veto, not an error.  The redirect response is returned to the caller.
	Proceed bool

	// Method is the method of the next hop.
	Method string

	// DropBody indicates that the next hop has no body.  When false,
	// the original body is sent again.
	DropBody bool

	// Strip is the set of header names removed from the next hop.
	Strip []string
}

// Policy is a strategy for following redirects.
type Policy interface {
	Decide(Input) Decision
}

// PolicyFunc is a function type that implements Policy.
type PolicyFunc func(Input) Decision

// Decide invokes this function.
func (pf PolicyFunc) Decide(in Input) Decision {
	return pf(in)
}

// DefaultPolicy is the Policy used when none is configured.
var DefaultPolicy Policy = PolicyFunc(Decide)

// Decide is the standard redirect decision:
//
//   - 301 and 302 change any method other than GET or HEAD to a GET with no body
//   - 303 changes any method to a GET with no body
//   - 307 and 308 preserve the method and the body
//
// A redirect that changes the scheme is vetoed unless AllowCrossProtocol is set.
// When the target host, including its port, differs from the original host,
// SensitiveHeaders are stripped.  When the body is dropped, ContentHeaders
// are stripped.
//
// Custom policies can delegate to this function and adjust the result.
func Decide(in Input) (d Decision) {
	if !IsRedirect(in.StatusCode) {
		return
	}

	if !in.AllowCrossProtocol && !strings.EqualFold(in.Current.Scheme, in.Target.Scheme) {
		return
	}

	d.Proceed = true
	d.Method = in.Method
	if len(d.Method) == 0 {
		d.Method = http.MethodGet
	}

	switch in.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound:
		if d.Method != http.MethodGet && d.Method != http.MethodHead {
			d.Method = http.MethodGet
			d.DropBody = true
		}

	case http.StatusSeeOther:
		d.Method = http.MethodGet
		d.DropBody = true
	}

	if !strings.EqualFold(in.Target.Host, in.Original.Host) {
		d.Strip = append(d.Strip, SensitiveHeaders...)
	}

	if d.DropBody {
		d.Strip = append(d.Strip, ContentHeaders...)
	}

	return
}
