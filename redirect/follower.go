// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redirect

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/xmidt-org/redirectaux"
	"github.com/xmidt-org/redirectaux/client"
	"github.com/xmidt-org/redirectaux/cookie"
)

// New creates a middleware constructor that decorates an HTTP client with
// redirect following.  This function is the primary and recommended way
// to use this package.
//
// The decorated client must not follow redirects itself.  If the
// constructor is passed a nil client, client.NewHTTPClient(nil) is used.
func New(cfg Config) client.Constructor {
	prototype := NewFollower(cfg, nil)
	return func(next redirectaux.Client) redirectaux.Client {
		f := new(Follower)
		*f = *prototype
		if next != nil {
			f.next = next
		}

		return f
	}
}

// Follower is a redirectaux.Client that follows redirects.  A Follower is
// immutable and safe for concurrent use, provided the decorated client and
// the cookie jar are.
type Follower struct {
	next redirectaux.Client

	maxRedirects  int
	crossProtocol bool

	jar    cookie.Jar
	header redirectaux.Header
	policy Policy

	hopTimeout     time.Duration
	maxElapsedTime time.Duration
	omitReferer    bool

	logger *zerolog.Logger
}

// NewFollower constructs a Follower from a configuration.  The next client
// executes each hop.  If next is nil, client.NewHTTPClient(nil) is used.
func NewFollower(cfg Config, next redirectaux.Client) *Follower {
	if next == nil {
		next = client.NewHTTPClient(nil)
	}

	f := &Follower{
		next:           next,
		maxRedirects:   cfg.maxRedirects(),
		crossProtocol:  cfg.AllowCrossProtocol,
		jar:            cfg.Jar,
		header:         cfg.Header,
		policy:         cfg.Policy,
		hopTimeout:     cfg.HopTimeout,
		maxElapsedTime: cfg.MaxElapsedTime,
		omitReferer:    cfg.OmitReferer,
		logger:         cfg.Logger,
	}

	if f.jar != nil {
		// the jar owns the Cookie header
		f.header = f.header.Without("Cookie")
	}

	if f.policy == nil {
		f.policy = DefaultPolicy
	}

	return f
}

// MaxRedirects returns the configured maximum number of redirects.
// Individual calls can override this with WithMaxRedirects.
func (f *Follower) MaxRedirects() int {
	return f.maxRedirects
}

// hop describes how to build the next request of a chain.
type hop struct {
	method     string
	target     *url.URL
	referer    *url.URL
	strip      []string
	dropBody   bool
	statusCode int
}

// Do executes the original request and follows any redirects.
//
// The returned response is the first response that was not followed.  When a
// redirect is vetoed by the Policy, that is the 3xx response and the error is nil.
//
// IMPORTANT: This method can return both a non-nil response and a non-nil error.
// When a redirect cannot be followed, e.g. because of an *InvalidLocationError
// or a *TooManyRedirectsError, the redirect response is returned with its Body
// already drained and closed.  The *http.Response.Body field will be nil in that case.
func (f *Follower) Do(original *http.Request) (*http.Response, error) {
	var (
		parent = original.Context()
		opts   = newOptions(parent, f.maxRedirects, f.crossProtocol)
		state  = newState(opts.maxRedirects)

		log = f.chainLogger(parent).With().
			Str("chain", state.ID().String()).
			Logger()

		ctx     = log.WithContext(withState(parent, state))
		cancels []context.CancelFunc
	)

	if f.maxElapsedTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.maxElapsedTime)
		cancels = append(cancels, cancel)
	}

	released := false
	defer func() {
		if !released {
			for _, c := range cancels {
				c()
			}
		}
	}()

	next := hop{
		method: original.Method,
		target: original.URL,
	}

	if len(next.method) == 0 {
		next.method = http.MethodGet
	}

	var previous *http.Response
	for {
		if err := ctx.Err(); err != nil {
			log.Debug().Err(err).Msg("chain cancelled")
			return nil, &CancelledError{Err: err}
		}

		request, err := f.newRequest(ctx, original, next)
		if err != nil {
			log.Warn().Err(err).Msg("unable to build redirect request")
			return previous, err
		}

		var hopCancel context.CancelFunc = func() {}
		if f.hopTimeout > 0 {
			var hopCtx context.Context
			hopCtx, hopCancel = context.WithTimeout(request.Context(), f.hopTimeout)
			request = request.WithContext(hopCtx)
		}

		state.start(request.Method, request.URL)
		response, err := f.next.Do(request)
		if err != nil {
			hopCancel()
			redirectaux.Discard(response)
			if ctxErr := ctx.Err(); ctxErr != nil {
				log.Debug().Err(ctxErr).Msg("chain cancelled")
				return nil, &CancelledError{Err: ctxErr}
			}

			log.Warn().Err(err).Str("url", request.URL.Redacted()).Msg("transport error")
			return nil, &TransportError{URL: request.URL, Err: err}
		}

		state.received(response.StatusCode)
		log.Debug().
			Str("method", request.Method).
			Str("url", request.URL.Redacted()).
			Int("status", response.StatusCode).
			Int("hop", state.Redirects()).
			Msg("hop")

		if f.jar != nil {
			f.jar.Store(request.URL, response.Header)
		}

		if !opts.follow || !IsRedirect(response.StatusCode) {
			released = true
			return f.final(response, f.keepAlive(cancels, hopCancel)), nil
		}

		location := response.Header.Get("Location")
		target, err := Resolve(request.URL, location)
		if err != nil {
			hopCancel()
			redirectaux.Discard(response)
			log.Warn().Err(err).Msg("invalid redirect")
			return response, err
		}

		d := f.policy.Decide(Input{
			StatusCode:         response.StatusCode,
			Method:             request.Method,
			Header:             response.Header,
			Original:           original.URL,
			Current:            request.URL,
			Target:             target,
			AllowCrossProtocol: opts.crossProtocol,
		})

		if !d.Proceed {
			log.Debug().Str("location", target.Redacted()).Msg("redirect not followed")
			released = true
			return f.final(response, f.keepAlive(cancels, hopCancel)), nil
		}

		if state.Redirects() >= opts.maxRedirects {
			hopCancel()
			redirectaux.Discard(response)
			err := &TooManyRedirectsError{
				Max: opts.maxRedirects,
				Via: state.Via(),
			}

			log.Warn().Err(err).Msg("too many redirects")
			return response, err
		}

		// intermediate responses are never seen by the caller
		redirectaux.Discard(response)
		hopCancel()
		previous = response

		next = hop{
			method:     d.Method,
			target:     target,
			referer:    request.URL,
			strip:      append(next.strip, d.Strip...),
			dropBody:   next.dropBody || d.DropBody,
			statusCode: response.StatusCode,
		}
	}
}

// chainLogger determines the base logger for a chain.
func (f *Follower) chainLogger(ctx context.Context) *zerolog.Logger {
	if f.logger != nil {
		return f.logger
	}

	return zerolog.Ctx(ctx)
}

// keepAlive returns the cancels that must outlive Do when a chain ends
// with a response.
func (f *Follower) keepAlive(cancels []context.CancelFunc, hopCancel context.CancelFunc) []context.CancelFunc {
	if f.hopTimeout > 0 {
		return append(cancels, hopCancel)
	}

	return cancels
}

// final prepares the response that ends a chain.  The given cancels
// are invoked when the caller closes the response body.
func (f *Follower) final(response *http.Response, cancels []context.CancelFunc) *http.Response {
	if len(cancels) == 0 {
		return response
	} else if response.Body == nil {
		for _, c := range cancels {
			c()
		}

		return response
	}

	response.Body = &cancelBody{
		ReadCloser: response.Body,
		cancels:    cancels,
	}

	return response
}

// newRequest builds the request for a hop.  The first hop is a copy of the
// original request with the fixed headers and jar cookies applied.
func (f *Follower) newRequest(ctx context.Context, original *http.Request, next hop) (*http.Request, error) {
	request := original.Clone(ctx)
	request.Method = next.method
	request.URL = next.target

	if next.referer != nil {
		if request.URL.Host != original.URL.Host {
			request.Host = ""
		}

		if err := f.setBody(request, original, next); err != nil {
			return nil, err
		}
	}

	request.Header = f.newHeader(original.Header, next)
	return request, nil
}

// setBody establishes the body of a hop after the first.
func (f *Follower) setBody(request, original *http.Request, next hop) error {
	switch {
	case next.dropBody:
		request.Body = nil
		request.GetBody = nil
		request.ContentLength = 0
		request.TransferEncoding = nil

	case original.Body == nil || original.Body == http.NoBody:
		// nothing to replay

	case original.GetBody == nil:
		return &NoGetBodyError{StatusCode: next.statusCode}

	default:
		body, err := original.GetBody()
		if err != nil {
			return &GetBodyError{Err: err}
		}

		request.Body = body
	}

	return nil
}

// newHeader computes the header of a hop from the original request's header.
func (f *Follower) newHeader(original http.Header, next hop) http.Header {
	h := original.Clone()
	if h == nil {
		h = make(http.Header)
	}

	for _, name := range next.strip {
		h.Del(name)
	}

	var supplied string
	if f.jar != nil {
		supplied = strings.Join(h.Values("Cookie"), "; ")
		h.Del("Cookie")
	}

	if next.referer != nil {
		h.Del("Referer")
		if ref := referer(next.referer, next.target); !f.omitReferer && len(ref) > 0 {
			h.Set("Referer", ref)
		}
	}

	f.header.SetTo(h)
	if f.jar != nil {
		if c := mergeCookies(supplied, f.jar.CookiesFor(next.target)); len(c) > 0 {
			h.Set("Cookie", c)
		}
	}

	return h
}

// referer computes the Referer for a redirect from previous to target.
// No Referer is sent on an https to http redirect.
func referer(previous, target *url.URL) string {
	if strings.EqualFold(previous.Scheme, "https") && strings.EqualFold(target.Scheme, "http") {
		return ""
	}

	ref := *previous
	ref.User = nil
	ref.Fragment = ""
	ref.RawFragment = ""
	return ref.String()
}

// mergeCookies appends the jar's cookies to the cookies the caller supplied.
// A supplied cookie whose name the jar also holds is dropped, so a value set
// by a server along the chain always reaches the next hop.
func mergeCookies(supplied, fromJar string) string {
	if len(supplied) == 0 {
		return fromJar
	} else if len(fromJar) == 0 {
		return supplied
	}

	held := make(map[string]bool)
	for _, pair := range strings.Split(fromJar, ";") {
		held[cookieName(pair)] = true
	}

	var o strings.Builder
	for _, pair := range strings.Split(supplied, ";") {
		pair = strings.TrimSpace(pair)
		if len(pair) == 0 || held[cookieName(pair)] {
			continue
		}

		o.WriteString(pair)
		o.WriteString("; ")
	}

	o.WriteString(fromJar)
	return o.String()
}

func cookieName(pair string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(pair), "=")
	return strings.TrimSpace(name)
}
