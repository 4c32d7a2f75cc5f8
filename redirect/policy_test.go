// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redirect

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/suite"
)

type PolicyTestSuite struct {
	suite.Suite
}

func (suite *PolicyTestSuite) url(raw string) *url.URL {
	u, err := url.Parse(raw)
	suite.Require().NoError(err)
	return u
}

func (suite *PolicyTestSuite) input(statusCode int, method, original, current, target string) Input {
	return Input{
		StatusCode: statusCode,
		Method:     method,
		Header:     http.Header{"Location": {target}},
		Original:   suite.url(original),
		Current:    suite.url(current),
		Target:     suite.url(target),
	}
}

func (suite *PolicyTestSuite) TestIsRedirect() {
	for _, statusCode := range []int{301, 302, 303, 307, 308} {
		suite.True(IsRedirect(statusCode), statusCode)
	}

	for _, statusCode := range []int{200, 204, 300, 304, 305, 306, 309, 400, 500} {
		suite.False(IsRedirect(statusCode), statusCode)
	}
}

func (suite *PolicyTestSuite) TestNotRedirect() {
	d := DefaultPolicy.Decide(suite.input(http.StatusNotModified, http.MethodGet, "http://a.com/", "http://a.com/", "http://a.com/x"))
	suite.False(d.Proceed)
}

func (suite *PolicyTestSuite) TestMethodRewrite() {
	testData := []struct {
		statusCode       int
		method           string
		expectedMethod   string
		expectedDropBody bool
	}{
		{statusCode: 301, method: "GET", expectedMethod: "GET"},
		{statusCode: 301, method: "HEAD", expectedMethod: "HEAD"},
		{statusCode: 301, method: "POST", expectedMethod: "GET", expectedDropBody: true},
		{statusCode: 301, method: "PUT", expectedMethod: "GET", expectedDropBody: true},
		{statusCode: 301, method: "DELETE", expectedMethod: "GET", expectedDropBody: true},
		{statusCode: 302, method: "GET", expectedMethod: "GET"},
		{statusCode: 302, method: "", expectedMethod: "GET"},
		{statusCode: 302, method: "HEAD", expectedMethod: "HEAD"},
		{statusCode: 302, method: "POST", expectedMethod: "GET", expectedDropBody: true},
		{statusCode: 302, method: "PATCH", expectedMethod: "GET", expectedDropBody: true},
		{statusCode: 303, method: "GET", expectedMethod: "GET", expectedDropBody: true},
		{statusCode: 303, method: "HEAD", expectedMethod: "GET", expectedDropBody: true},
		{statusCode: 303, method: "POST", expectedMethod: "GET", expectedDropBody: true},
		{statusCode: 303, method: "PUT", expectedMethod: "GET", expectedDropBody: true},
		{statusCode: 307, method: "GET", expectedMethod: "GET"},
		{statusCode: 307, method: "POST", expectedMethod: "POST"},
		{statusCode: 307, method: "PUT", expectedMethod: "PUT"},
		{statusCode: 308, method: "POST", expectedMethod: "POST"},
		{statusCode: 308, method: "DELETE", expectedMethod: "DELETE"},
	}

	for _, record := range testData {
		suite.Run(strconv.Itoa(record.statusCode)+"/"+record.method, func() {
			d := Decide(suite.input(record.statusCode, record.method, "http://a.com/", "http://a.com/start", "http://a.com/landing"))
			suite.True(d.Proceed)
			suite.Equal(record.expectedMethod, d.Method)
			suite.Equal(record.expectedDropBody, d.DropBody)

			if record.expectedDropBody {
				suite.ElementsMatch(ContentHeaders, d.Strip)
			} else {
				suite.Empty(d.Strip)
			}
		})
	}
}

func (suite *PolicyTestSuite) TestCrossProtocol() {
	testData := []struct {
		current       string
		target        string
		allow         bool
		expectProceed bool
	}{
		{current: "http://a.com/", target: "https://a.com/", allow: false, expectProceed: false},
		{current: "https://a.com/", target: "http://a.com/", allow: false, expectProceed: false},
		{current: "http://a.com/", target: "https://a.com/", allow: true, expectProceed: true},
		{current: "https://a.com/", target: "http://a.com/", allow: true, expectProceed: true},
		{current: "http://a.com/", target: "HTTP://a.com/x", allow: false, expectProceed: true},
		{current: "https://a.com/", target: "https://a.com:8443/", allow: false, expectProceed: true},
	}

	for i, record := range testData {
		suite.Run(strconv.Itoa(i), func() {
			in := suite.input(http.StatusFound, http.MethodGet, record.current, record.current, record.target)
			in.AllowCrossProtocol = record.allow
			suite.Equal(record.expectProceed, Decide(in).Proceed)
		})
	}
}

func (suite *PolicyTestSuite) TestStrip() {
	testData := []struct {
		original      string
		target        string
		expectedStrip []string
	}{
		{original: "http://a.com/", target: "http://a.com/x"},
		{original: "http://a.com/", target: "http://A.COM/x"},
		{original: "http://a.com:8080/", target: "http://a.com:8080/x"},
		{original: "http://a.com/", target: "http://a.com:8080/x", expectedStrip: SensitiveHeaders},
		{original: "http://a.com:8080/", target: "http://a.com:9090/x", expectedStrip: SensitiveHeaders},
		{original: "http://a.com/", target: "http://b.com/x", expectedStrip: SensitiveHeaders},
		{original: "http://a.com/", target: "http://sub.a.com/x", expectedStrip: SensitiveHeaders},
	}

	for i, record := range testData {
		suite.Run(strconv.Itoa(i), func() {
			// the current URL is on yet another host, to show that only the original host matters
			d := Decide(suite.input(http.StatusTemporaryRedirect, http.MethodGet, record.original, "http://c.com/", record.target))
			suite.True(d.Proceed)
			suite.ElementsMatch(record.expectedStrip, d.Strip)
		})
	}

	suite.Run("BodyDropped", func() {
		d := Decide(suite.input(http.StatusSeeOther, http.MethodPost, "http://a.com/", "http://a.com/", "http://b.com/"))
		suite.True(d.Proceed)
		suite.ElementsMatch(append(append([]string{}, SensitiveHeaders...), ContentHeaders...), d.Strip)
	})
}

func (suite *PolicyTestSuite) TestPolicyFunc() {
	var called bool
	p := PolicyFunc(func(in Input) Decision {
		called = true
		d := Decide(in)
		d.Strip = append(d.Strip, "X-Custom")
		return d
	})

	d := p.Decide(suite.input(http.StatusFound, http.MethodGet, "http://a.com/", "http://a.com/", "http://a.com/x"))
	suite.True(called)
	suite.True(d.Proceed)
	suite.Equal([]string{"X-Custom"}, d.Strip)
}

func TestPolicy(t *testing.T) {
	suite.Run(t, new(PolicyTestSuite))
}
