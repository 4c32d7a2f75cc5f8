// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redirect

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/xmidt-org/redirectaux"
)

var (
	// ErrMissingLocation indicates that a redirect response had no Location header.
	ErrMissingLocation = errors.New("redirect response has no Location header")

	// ErrInvalidLocation indicates that a Location header had bytes that are not
	// legal in an HTTP header value.
	ErrInvalidLocation = errors.New("the Location header contains invalid characters")

	// ErrUnsupportedScheme indicates that a Location resolved to something other
	// than an http or https URL.
	ErrUnsupportedScheme = errors.New("the redirect target must be an http or https URL")

	// ErrNoHost indicates that a Location resolved to a URL without a host.
	ErrNoHost = errors.New("the redirect target has no host")
)

// TransportError indicates that the decorated client failed to execute a hop.
// This layer never retries a failed hop.
type TransportError struct {
	// URL is the target of the hop that failed.
	URL *url.URL

	// Err is the error returned by the decorated client.
	Err error
}

// Error fulfills the error interface.
func (err *TransportError) Error() string {
	var o strings.Builder
	o.WriteString("redirect: transport error")
	if err.URL != nil {
		o.WriteString(" for ")
		o.WriteString(err.URL.Redacted())
	}

	o.WriteString(": ")
	o.WriteString(err.Err.Error())
	return o.String()
}

// Unwrap returns the error from the decorated client.
func (err *TransportError) Unwrap() error {
	return err.Err
}

// Temporary reports whether the underlying error is temporary.
func (err *TransportError) Temporary() bool {
	return redirectaux.IsTemporary(err.Err)
}

// InvalidLocationError indicates that a redirect response had a missing or
// unusable Location header.
type InvalidLocationError struct {
	// Location is the raw header value, which will be empty if the header was missing.
	Location string

	// Err describes what was wrong with Location.
	Err error
}

// Error fulfills the error interface.
func (err *InvalidLocationError) Error() string {
	var o strings.Builder
	o.WriteString("redirect: invalid location [")
	o.WriteString(err.Location)
	o.WriteString("]: ")
	o.WriteString(err.Err.Error())
	return o.String()
}

// Unwrap returns the cause.
func (err *InvalidLocationError) Unwrap() error {
	return err.Err
}

// TooManyRedirectsError indicates that a chain needed more redirects than allowed.
type TooManyRedirectsError struct {
	// Max is the maximum number of redirects that was in effect.
	Max int

	// Via holds every hop that was executed, in order.  The last hop
	// is the redirect that was not followed.
	Via []Hop
}

// Error fulfills the error interface.
func (err *TooManyRedirectsError) Error() string {
	return "redirect: stopped after " + strconv.Itoa(err.Max) + " redirects"
}

// CancelledError indicates that the chain's context was canceled or its
// deadline passed.  errors.Is(err, context.Canceled) and
// errors.Is(err, context.DeadlineExceeded) both work through this type.
type CancelledError struct {
	// Err is the context error.
	Err error
}

// Error fulfills the error interface.
func (err *CancelledError) Error() string {
	return "redirect: chain cancelled: " + err.Err.Error()
}

// Unwrap returns the context error.
func (err *CancelledError) Unwrap() error {
	return err.Err
}

// NoGetBodyError indicates that a 307 or 308 redirect required the request
// body to be sent again, but the original request had no GetBody.
//
// Requests with no body, or with http.NoBody, never produce this error.
type NoGetBodyError struct {
	// StatusCode is the redirect status that required the body.
	StatusCode int
}

// Error fulfills the error interface.
func (err *NoGetBodyError) Error() string {
	return "http.Request.GetBody must be set in order to replay the body for a " +
		strconv.Itoa(err.StatusCode) + " redirect"
}

// GetBodyError indicates that http.Request.GetBody returned an error.  The
// chain cannot continue, since the original request body is unavailable.
type GetBodyError struct {
	// Err is the error returned from GetBody
	Err error
}

// Error fulfills the error interface
func (err *GetBodyError) Error() string {
	var o strings.Builder
	o.WriteString("GetBody returned an error: [")
	o.WriteString(err.Err.Error())
	o.WriteRune(']')
	return o.String()
}

// Unwrap returns the error from GetBody.
func (err *GetBodyError) Unwrap() error {
	return err.Err
}
