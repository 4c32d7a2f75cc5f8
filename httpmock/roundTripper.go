// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package httpmock

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// roundTrip is the method name under which every hop is recorded,
// whether it arrives through RoundTrip or Do.
const roundTrip = "RoundTrip"

// RoundTripCall is the expectation for one hop of a redirect chain.
// It wraps a *mock.Call with typesafe Return, Respond, and Redirect.
type RoundTripCall struct {
	*mock.Call

	container *RoundTripper
	asserters []RequestAsserter
}

func newRoundTripCall(container *RoundTripper, call *mock.Call) *RoundTripCall {
	rtc := &RoundTripCall{
		container: container,
		Call:      call,
	}

	rtc.Call.Run(func(args mock.Arguments) {
		request, _ := args.Get(0).(*http.Request)
		container.check(request, rtc.asserters)
	})

	return rtc
}

// Return sets the result of this hop.
func (rtc *RoundTripCall) Return(r *http.Response, err error) *RoundTripCall {
	rtc.Call = rtc.Call.Return(r, err)
	return rtc
}

// Respond answers this hop with Response(statusCode, body, headers...).
func (rtc *RoundTripCall) Respond(statusCode int, body string, headers ...string) *RoundTripCall {
	return rtc.Return(Response(statusCode, body, headers...), nil)
}

// Redirect answers this hop with Redirect(statusCode, location, setCookies...).
func (rtc *RoundTripCall) Redirect(statusCode int, location string, setCookies ...string) *RoundTripCall {
	return rtc.Return(Redirect(statusCode, location, setCookies...), nil)
}

// Once is the typesafe version of mock.Call.Once
func (rtc *RoundTripCall) Once() *RoundTripCall {
	rtc.Call = rtc.Call.Once()
	return rtc
}

// AssertRequest adds assertions that only apply to this hop.  They run
// after any assertions set on the RoundTripper itself.
func (rtc *RoundTripCall) AssertRequest(a ...RequestAsserter) *RoundTripCall {
	rtc.asserters = append(rtc.asserters, a...)
	return rtc
}

// RoundTripper is a scripted transport for redirect chains.  It is both an
// http.RoundTripper and, through Do, a redirectaux.Client, so it can sit
// below an *http.Client or directly below a redirect Follower.
type RoundTripper struct {
	mock.Mock

	t         mock.TestingT
	assert    *assert.Assertions
	asserters []RequestAsserter
}

var _ http.RoundTripper = (*RoundTripper)(nil)

// NewRoundTripper returns a scripted transport that reports to t.
func NewRoundTripper(t mock.TestingT) *RoundTripper {
	m := &RoundTripper{
		t:      t,
		assert: assert.New(t),
	}

	m.Mock.Test(t)
	return m
}

// NewRoundTripperSuite returns a scripted transport for the given suite.
func NewRoundTripperSuite(s suite.TestingSuite) *RoundTripper {
	return NewRoundTripper(s.T())
}

func (m *RoundTripper) RoundTrip(request *http.Request) (*http.Response, error) {
	var (
		response *http.Response
		err      error
	)

	// an expectation without a Return yields a nil response and error
	if arguments := m.MethodCalled(roundTrip, request); len(arguments) == 2 {
		response, _ = arguments.Get(0).(*http.Response)
		err, _ = arguments.Get(1).(error)
	}

	return response, err
}

// Do executes a hop exactly like RoundTrip.
func (m *RoundTripper) Do(request *http.Request) (*http.Response, error) {
	return m.RoundTrip(request)
}

// AssertRequest adds assertions that every hop must pass, e.g. a header
// that must never leak across the chain.
func (m *RoundTripper) AssertRequest(a ...RequestAsserter) *RoundTripper {
	m.asserters = append(m.asserters, a...)
	return m
}

func (m *RoundTripper) check(request *http.Request, local []RequestAsserter) {
	for _, a := range m.asserters {
		a.Assert(m.assert, request)
	}

	for _, a := range local {
		a.Assert(m.assert, request)
	}
}

// OnAny expects a hop with any request.
func (m *RoundTripper) OnAny() *RoundTripCall {
	return m.OnMatchAll()
}

// OnHop expects a hop with the given method and URL path, which is how most
// tests identify the hops of a chain.
func (m *RoundTripper) OnHop(method, path string) *RoundTripCall {
	return m.OnMatchAll(Method(method), Path(path))
}

// OnMatchAll expects a hop whose request satisfies every matcher.  With no
// matchers, any request is accepted.
func (m *RoundTripper) OnMatchAll(rms ...RequestMatcher) *RoundTripCall {
	return newRoundTripCall(
		m,
		m.On(roundTrip, mock.MatchedBy(func(candidate *http.Request) bool {
			for _, rm := range rms {
				if !rm.Match(candidate) {
					return false
				}
			}

			return true
		})),
	)
}

// AssertExpectations verifies that every expected hop was executed.
func (m *RoundTripper) AssertExpectations() {
	m.Mock.AssertExpectations(m.t)
}
