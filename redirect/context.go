// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redirect

import (
	"context"
	"net/url"

	"github.com/google/uuid"
)

type followKey struct{}
type maxRedirectsKey struct{}
type crossProtocolKey struct{}

// WithFollow returns a context that enables or disables redirect following
// for requests that use it.  When disabled, the first response is returned
// regardless of its status.
func WithFollow(ctx context.Context, follow bool) context.Context {
	return context.WithValue(ctx, followKey{}, follow)
}

// WithMaxRedirects returns a context that overrides Config.MaxRedirects for
// requests that use it.  A negative value is treated as zero, meaning that
// any redirect results in a *TooManyRedirectsError.
func WithMaxRedirects(ctx context.Context, n int) context.Context {
	if n < 0 {
		n = 0
	}

	return context.WithValue(ctx, maxRedirectsKey{}, n)
}

// WithCrossProtocol returns a context that overrides Config.AllowCrossProtocol
// for requests that use it.
func WithCrossProtocol(ctx context.Context, allow bool) context.Context {
	return context.WithValue(ctx, crossProtocolKey{}, allow)
}

// options are the effective per-call settings.
type options struct {
	follow        bool
	maxRedirects  int
	crossProtocol bool
}

// newOptions computes the per-call settings, starting with the configured
// defaults and applying any overrides from the context.
func newOptions(ctx context.Context, maxRedirects int, crossProtocol bool) options {
	o := options{
		follow:        true,
		maxRedirects:  maxRedirects,
		crossProtocol: crossProtocol,
	}

	if v, ok := ctx.Value(followKey{}).(bool); ok {
		o.follow = v
	}

	if v, ok := ctx.Value(maxRedirectsKey{}).(int); ok {
		o.maxRedirects = v
	}

	if v, ok := ctx.Value(crossProtocolKey{}).(bool); ok {
		o.crossProtocol = v
	}

	return o
}

// Hop describes one executed request within a chain.
type Hop struct {
	Method string
	URL    *url.URL

	// StatusCode is the status of the response to this hop.  It is zero
	// until a response is received.
	StatusCode int
}

// State is the current state of a redirect chain.  Instances of this type
// are available in the request context of every hop.
//
// This type is never safe for concurrent access.
type State struct {
	id           uuid.UUID
	maxRedirects int
	hops         []Hop
}

func newState(maxRedirects int) *State {
	return &State{
		id:           uuid.New(),
		maxRedirects: maxRedirects,
	}
}

// ID is the unique identifier for this chain.  It also appears as the
// "chain" field in log output.
func (s *State) ID() uuid.UUID {
	return s.id
}

// Redirects is the number of redirects followed so far.  Zero means
// the original request is being executed.
func (s *State) Redirects() int {
	if len(s.hops) == 0 {
		return 0
	}

	return len(s.hops) - 1
}

// MaxRedirects is the maximum number of redirects for this chain.
func (s *State) MaxRedirects() int {
	return s.maxRedirects
}

// Via returns a copy of the hops executed so far, including the current hop.
func (s *State) Via() []Hop {
	return append([]Hop{}, s.hops...)
}

// start records a new hop that is about to be executed.
func (s *State) start(method string, u *url.URL) {
	s.hops = append(s.hops, Hop{
		Method: method,
		URL:    u,
	})
}

// received records the status of the current hop.
func (s *State) received(statusCode int) {
	if len(s.hops) > 0 {
		s.hops[len(s.hops)-1].StatusCode = statusCode
	}
}

type stateKey struct{}

// GetState returns the redirect State associated with the given context.
// Decorated code can make use of this for metrics, logging, etc.
//
// IMPORTANT: State is not safe for concurrent access.  The State instance
// returned by this function should never be retained.
func GetState(ctx context.Context) *State {
	s, _ := ctx.Value(stateKey{}).(*State)
	return s
}

func withState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, stateKey{}, s)
}
