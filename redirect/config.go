// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redirect

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/xmidt-org/redirectaux"
	"github.com/xmidt-org/redirectaux/cookie"
)

// DefaultMaxRedirects is the maximum number of redirects a chain will follow
// when Config.MaxRedirects is unset.
const DefaultMaxRedirects = 10

// Config is the set of configurable options for a Follower.  The zero value
// is a usable configuration.
type Config struct {
	// MaxRedirects is the maximum number of redirects a single call will follow.
	// A chain of exactly this many redirects succeeds.  One more redirect results
	// in a *TooManyRedirectsError.
	//
	// If zero, DefaultMaxRedirects is used.  If negative, no redirects are
	// permitted and any redirect response results in a *TooManyRedirectsError.
	// Use WithFollow to simply hand back redirect responses instead.
	MaxRedirects int

	// AllowCrossProtocol permits redirects that change the scheme, in
	// either direction between http and https.  When false, such a redirect
	// is not followed and the 3xx response is returned.
	AllowCrossProtocol bool

	// Jar is the optional cookie jar.  When set, every response is stored
	// in the jar and every hop's Cookie header is computed from it.
	Jar cookie.Jar

	// Header is a set of headers applied to every hop, after any header
	// stripping.  A Cookie header here is ignored when Jar is set.
	Header redirectaux.Header

	// Policy decides how each redirect is followed.  If unset, DefaultPolicy is used.
	Policy Policy

	// HopTimeout is the maximum time allowed for each individual hop,
	// including reading the response body.  If nonpositive, hops are bounded
	// only by the request's context.
	HopTimeout time.Duration

	// MaxElapsedTime bounds the entire chain.  It is checked before each hop,
	// and also bounds the hop in flight.  If nonpositive, no chain deadline
	// is enforced beyond the request's context.
	MaxElapsedTime time.Duration

	// OmitReferer prevents the Referer header from being set on each hop.
	// A Referer is never sent on an https to http redirect.
	OmitReferer bool

	// Logger is the logger for chains.  If unset, the logger in the request
	// context is used, as with zerolog.Ctx.
	Logger *zerolog.Logger
}

// maxRedirects computes the effective maximum from this configuration.
func (cfg Config) maxRedirects() int {
	switch {
	case cfg.MaxRedirects == 0:
		return DefaultMaxRedirects

	case cfg.MaxRedirects < 0:
		return 0

	default:
		return cfg.MaxRedirects
	}
}
