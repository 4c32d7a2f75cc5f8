// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"net/http"

	"github.com/xmidt-org/redirectaux"
)

// Func is an HTTP client function type
type Func func(*http.Request) (*http.Response, error)

// Do fulfills the redirectaux.Client interface and permits this function
// to be used as the transport for a redirect chain.
func (f Func) Do(request *http.Request) (*http.Response, error) {
	return f(request)
}

var _ redirectaux.Client = Func(nil)

// Constructor applies clientside middleware to a redirectaux.Client.
// redirect.New returns a Constructor, so redirect following composes with
// any other client decoration.
type Constructor func(redirectaux.Client) redirectaux.Client

// Chain is an immutable sequence of constructors.
type Chain struct {
	c []Constructor
}

// NewChain creates a chain from a sequence of constructors.  The constructors
// are always applied in the order presented here.  Nil constructors are skipped.
func NewChain(ctors ...Constructor) Chain {
	return Chain{}.Append(ctors...)
}

// Append adds additional Constructors to this chain, and returns the new chain.
// This chain is not modified.  If more has no non-nil elements, this chain is returned.
func (c Chain) Append(more ...Constructor) Chain {
	var nc Chain
	for _, ctor := range more {
		if ctor != nil {
			nc.c = append(nc.c, ctor)
		}
	}

	if len(nc.c) == 0 {
		return c
	}

	nc.c = append(append(make([]Constructor, 0, len(c.c)+len(nc.c)), c.c...), nc.c...)
	return nc
}

// Extend is like Append, except that the additional Constructors come from
// another chain
func (c Chain) Extend(more Chain) Chain {
	return c.Append(more.c...)
}

// Len returns the number of constructors in this chain.
func (c Chain) Len() int {
	return len(c.c)
}

// Then applies the given sequence of middleware to the next redirectaux.Client.
//
// If next is nil, the result of NewHTTPClient(nil) is decorated.  Unlike
// http.DefaultClient, that client never follows redirects on its own, so a
// redirect middleware in this chain sees every hop.
func (c Chain) Then(next redirectaux.Client) redirectaux.Client {
	if next == nil {
		next = NewHTTPClient(nil)
	}

	// apply in reverse order, so that the order of
	// execution matches the order supplied to this chain
	for i := len(c.c) - 1; i >= 0; i-- {
		next = c.c[i](next)
	}

	return next
}

// ThenFunc makes it easier to use a client transactor Func as the HTTP client
func (c Chain) ThenFunc(next Func) redirectaux.Client {
	if next == nil {
		return c.Then(nil) // avoid a "nil" interface
	}

	return c.Then(next)
}
