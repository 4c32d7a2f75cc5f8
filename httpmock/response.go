// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package httpmock

import (
	"net/http"
	"strconv"
)

// Response builds an *http.Response with the given status code and body text.
// The headers are interpreted as alternating name/value pairs, and duplicate
// names produce multivalued headers.  The Body is always a *BodyReadCloser.
func Response(statusCode int, body string, headers ...string) *http.Response {
	r := &http.Response{
		Status:        strconv.Itoa(statusCode) + " " + http.StatusText(statusCode),
		StatusCode:    statusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        make(http.Header),
		Body:          BodyString(body),
		ContentLength: int64(len(body)),
	}

	for i := 0; i+1 < len(headers); i += 2 {
		r.Header.Add(headers[i], headers[i+1])
	}

	return r
}

// Redirect builds a redirect response with the given Location.  If location
// is empty, no Location header is set.  Each setCookie value is emitted as
// a separate Set-Cookie header.
func Redirect(statusCode int, location string, setCookies ...string) *http.Response {
	r := Response(statusCode, "")
	if len(location) > 0 {
		r.Header.Set("Location", location)
	}

	for _, sc := range setCookies {
		r.Header.Add("Set-Cookie", sc)
	}

	return r
}
