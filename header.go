// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redirectaux

import "net/http"

// emptyHeader is the canonical, immutable empty Header
var emptyHeader = Header{}

// Header is a more efficient version of http.Header for situations where
// a number of HTTP headers are stored in memory and reused.  Rather than
// a map, a simple list of headers is maintained in canonicalized form.  This
// is much faster to iterate over than a map, which becomes important when
// the same Header is applied to every hop of every redirect chain.
//
// A Header instance is immutable once created.
type Header struct {
	names  []string
	values [][]string
}

// NewHeader creates an immutable, preprocessed Header given an
// http.Header.  Names with no values are skipped.
func NewHeader(v http.Header) Header {
	if len(v) > 0 {
		h := Header{
			names:  make([]string, 0, len(v)),
			values: make([][]string, 0, len(v)),
		}

		for name, values := range v {
			if len(values) == 0 {
				continue
			}

			h.names = append(h.names, http.CanonicalHeaderKey(name))
			h.values = append(h.values, append([]string{}, values...))
		}

		return h
	}

	return emptyHeader
}

// NewHeaders takes a variadic list of values and interprets them as alternating
// name/value pairs, with each pair specifying an HTTP header.  Duplicate header names
// are supported, which results in multivalued headers.  If v contains an odd number
// of strings, the last string is interpreted as a header with a blank value.
func NewHeaders(v ...string) Header {
	if len(v) > 0 {
		h := make(http.Header)

		var i, j int
		for i, j = 0, 1; j < len(v); i, j = i+2, j+2 {
			h.Add(v[i], v[j])
		}

		if i < len(v) {
			h.Add(v[i], "")
		}

		return NewHeader(h)
	}

	return emptyHeader
}

// Len returns the number of distinct header names in this Header.
func (h Header) Len() int {
	return len(h.names)
}

// Has tests if this Header defines the given name.  The name does not
// need to be canonicalized.
func (h Header) Has(name string) bool {
	name = http.CanonicalHeaderKey(name)
	for _, n := range h.names {
		if n == name {
			return true
		}
	}

	return false
}

// Without returns a Header that omits the given names.  This Header is
// not modified.  If none of the names are present, this Header is returned.
func (h Header) Without(names ...string) Header {
	var n Header
	for i, name := range h.names {
		skip := false
		for _, excluded := range names {
			if name == http.CanonicalHeaderKey(excluded) {
				skip = true
				break
			}
		}

		if !skip {
			n.names = append(n.names, name)
			n.values = append(n.values, h.values[i])
		}
	}

	if n.Len() == h.Len() {
		return h
	}

	return n
}

// SetTo overwrites headers in the destination with the ones defined by
// this Header.
func (h Header) SetTo(dst http.Header) {
	for i, name := range h.names {
		// the names are already canonicalized
		dst[name] = append([]string{}, h.values[i]...)
	}
}

// AddTo appends the values in this Header to any values already present
// in the destination.
func (h Header) AddTo(dst http.Header) {
	for i, name := range h.names {
		dst[name] = append(dst[name], h.values[i]...)
	}
}
