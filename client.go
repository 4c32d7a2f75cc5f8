// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redirectaux

import (
	"io"
	"net/http"
)

// Client is the canonical interface implemented by *http.Client.  Every hop
// of a redirect chain is executed through an instance of this interface.
type Client interface {
	Do(*http.Request) (*http.Response, error)
}

var _ Client = (*http.Client)(nil)

// Cleanup is a utility function for ensuring that a client response's
// Body is drained and closed.  This function does not set the Body to nil.
//
// If either the response or the response.Body field is nil, this function
// does nothing.
func Cleanup(r *http.Response) {
	if r != nil && r.Body != nil {
		io.Copy(io.Discard, r.Body)
		r.Body.Close()
	}
}

// Discard drains and closes a response's Body, then sets the Body to nil.
// Responses that are handed back to callers after a failed chain are
// passed through this function so that headers and status remain visible
// while the connection is released.
func Discard(r *http.Response) {
	Cleanup(r)
	if r != nil {
		r.Body = nil
	}
}
