// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package httpmock

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/stretchr/testify/assert"
)

// RequestMatcher selects which expectation applies to a hop.  Matchers run
// inside mock.MatchedBy, before an expectation has been chosen.
type RequestMatcher interface {
	Match(*http.Request) bool
}

// RequestAsserter verifies the state of a hop after its expectation was
// matched.  A failed assertion is reported without changing which
// expectation was selected.
type RequestAsserter interface {
	Assert(*assert.Assertions, *http.Request)
}

// RequestAsserterFunc allows closures to be used directly as RequestAsserters
type RequestAsserterFunc func(*assert.Assertions, *http.Request)

func (raf RequestAsserterFunc) Assert(a *assert.Assertions, r *http.Request) {
	raf(a, r)
}

// RequestChecker both matches and asserts.  A request that Match accepts
// always passes Assert, and vice versa.
type RequestChecker interface {
	RequestMatcher
	RequestAsserter
}

// urlChecker compares one component of a hop's URL.
type urlChecker struct {
	component string
	expected  string
	fold      bool
	get       func(*url.URL) string
}

func (uc urlChecker) normalize(v string) string {
	if uc.fold {
		return strings.ToLower(v)
	}

	return v
}

func (uc urlChecker) Match(r *http.Request) bool {
	return r.URL != nil && uc.normalize(uc.get(r.URL)) == uc.normalize(uc.expected)
}

func (uc urlChecker) Assert(assert *assert.Assertions, r *http.Request) {
	if assert.NotNil(r.URL, "the hop has no URL") {
		assert.Equal(
			uc.normalize(uc.expected),
			uc.normalize(uc.get(r.URL)),
			"the hop URL %s did not match",
			uc.component,
		)
	}
}

// Path checks the URL path of a hop.
func Path(expected string) RequestChecker {
	return urlChecker{
		component: "path",
		expected:  expected,
		get:       func(u *url.URL) string { return u.Path },
	}
}

// Host checks the URL host of a hop, including any port.  The comparison is
// case-insensitive.
func Host(expected string) RequestChecker {
	return urlChecker{
		component: "host",
		expected:  expected,
		fold:      true,
		get:       func(u *url.URL) string { return u.Host },
	}
}

// Scheme checks the URL scheme of a hop, e.g. to verify a cross-protocol
// redirect landed on https.
func Scheme(expected string) RequestChecker {
	return urlChecker{
		component: "scheme",
		expected:  expected,
		fold:      true,
		get:       func(u *url.URL) string { return u.Scheme },
	}
}

// Method checks the method of a hop, which redirects may rewrite to GET.
type Method string

func (m Method) Match(r *http.Request) bool {
	return r.Method == string(m)
}

func (m Method) Assert(assert *assert.Assertions, r *http.Request) {
	assert.Equal(string(m), r.Method, "the hop method did not match")
}

type headerChecker struct {
	name     string
	expected []string
}

func (hc headerChecker) Match(r *http.Request) bool {
	actual := r.Header.Values(hc.name)
	if len(actual) != len(hc.expected) {
		return false
	}

	remaining := make(map[string]int, len(actual))
	for _, v := range actual {
		remaining[v]++
	}

	for _, e := range hc.expected {
		if remaining[e] == 0 {
			return false
		}

		remaining[e]--
	}

	return true
}

func (hc headerChecker) Assert(assert *assert.Assertions, r *http.Request) {
	assert.ElementsMatch(
		hc.expected,
		r.Header.Values(hc.name),
		"the hop header %s did not match",
		hc.name,
	)
}

// Header checks that a hop carries exactly the expected values for a header,
// in any order.  With no expected values, the header must be absent, which is
// how tests verify that credentials were stripped.
func Header(name string, expected ...string) RequestChecker {
	return headerChecker{
		name:     http.CanonicalHeaderKey(name),
		expected: append([]string{}, expected...),
	}
}

// Body asserts the complete body of a hop.  The empty string asserts that the
// body is nil or empty, e.g. after a 303 dropped it.
//
// The body is consumed, so later asserters cannot read it.
type Body string

func (b Body) Assert(assert *assert.Assertions, r *http.Request) {
	if r.Body == nil {
		assert.Empty(string(b), "the hop has no body")
		return
	}

	actual, err := io.ReadAll(r.Body)
	if assert.NoError(err, "unable to read the hop body") {
		assert.Equal(string(b), string(actual), "the hop body did not match")
	}
}
