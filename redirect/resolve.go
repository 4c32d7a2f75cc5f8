// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redirect

import (
	"net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// Resolve computes the target of a redirect from the URL of the request that
// produced it and the raw Location header.  Path-only, protocol-relative, and
// absolute references are resolved per RFC 3986.  If the reference has no
// fragment, the fragment of base is kept.
//
// The returned error is always an *InvalidLocationError.
func Resolve(base *url.URL, location string) (*url.URL, error) {
	if len(location) == 0 {
		return nil, &InvalidLocationError{Err: ErrMissingLocation}
	}

	if !httpguts.ValidHeaderFieldValue(location) {
		return nil, &InvalidLocationError{Location: location, Err: ErrInvalidLocation}
	}

	ref, err := url.Parse(location)
	if err != nil {
		return nil, &InvalidLocationError{Location: location, Err: err}
	}

	target := base.ResolveReference(ref)
	switch strings.ToLower(target.Scheme) {
	case "http", "https":
		// supported
	default:
		return nil, &InvalidLocationError{Location: location, Err: ErrUnsupportedScheme}
	}

	if len(target.Host) == 0 {
		return nil, &InvalidLocationError{Location: location, Err: ErrNoHost}
	}

	if len(ref.Fragment) == 0 {
		target.Fragment = base.Fragment
		target.RawFragment = base.RawFragment
	}

	return target, nil
}
