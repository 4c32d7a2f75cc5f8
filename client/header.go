// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"net/http"

	"github.com/xmidt-org/redirectaux"
)

// Header adds a middleware Constructor that uses a closure to modify
// each request header.  Both redirectaux.Header.SetTo and redirectaux.Header.AddTo
// can be used as this closure.
//
// When placed before a redirect middleware, the closure only sees the
// initial request.  The redirect layer then decides which of the resulting
// headers survive each hop.  When placed after it, the closure runs on every hop.
func Header(hf func(http.Header)) Constructor {
	return func(next redirectaux.Client) redirectaux.Client {
		return Func(func(request *http.Request) (*http.Response, error) {
			if request.Header == nil {
				request.Header = make(http.Header)
			}

			hf(request.Header)
			return next.Do(request)
		})
	}
}
