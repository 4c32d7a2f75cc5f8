// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package cookie

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Jar is the contract a redirect chain uses to propagate cookies across hops.
// Implementations must be safe for concurrent use, since several chains may
// share one Jar.
type Jar interface {
	// CookiesFor returns the Cookie header value for a request to the given URL,
	// formatted as "name=value; name2=value2".  The empty string means no cookies.
	CookiesFor(*url.URL) string

	// Store records every Set-Cookie header in a response received from the given URL.
	Store(*url.URL, http.Header)
}

// Options configures a Set.  The zero value is usable.
type Options struct {
	// Storage holds the entries.  If unset, a new MemoryStorage is used.
	Storage Storage

	// Now is the clock used for expiry.  If unset, time.Now is used.
	Now func() time.Time

	// Logger receives rejected cookies and Storage errors.  If unset,
	// nothing is logged.
	Logger *zerolog.Logger
}

// Set is the standard Jar.  It is also an http.CookieJar.
type Set struct {
	lock    sync.Mutex
	storage Storage
	now     func() time.Time
	log     zerolog.Logger
}

var _ Jar = (*Set)(nil)
var _ http.CookieJar = (*Set)(nil)

// New creates a Set from the given options.
func New(o Options) *Set {
	s := &Set{
		storage: o.Storage,
		now:     o.Now,
		log:     zerolog.Nop(),
	}

	if s.storage == nil {
		s.storage = NewMemoryStorage()
	}

	if s.now == nil {
		s.now = time.Now
	}

	if o.Logger != nil {
		s.log = *o.Logger
	}

	return s
}

// matching returns the live entries that apply to u, evicting any expired
// entries it encounters.  The lock must be held.
func (s *Set) matching(u *url.URL) []Entry {
	host, err := canonicalHost(u)
	if err != nil {
		return nil
	}

	entries, err := s.storage.Entries()
	if err != nil {
		s.log.Error().Err(err).Msg("unable to load cookies")
		return nil
	}

	var (
		now         = s.now()
		secure      = IsSecure(u)
		requestPath = u.EscapedPath()
		matched     []Entry
	)

	if len(requestPath) == 0 {
		requestPath = "/"
	}

	for _, e := range entries {
		if e.Expired(now) {
			if err := s.storage.Delete(e.Key()); err != nil {
				s.log.Error().Err(err).Str("name", e.Name).Msg("unable to evict expired cookie")
			}

			continue
		}

		if e.matches(host, requestPath, secure) {
			matched = append(matched, e)
		}
	}

	return matched
}

// CookiesFor returns the Cookie header value for a request to u.
func (s *Set) CookiesFor(u *url.URL) string {
	s.lock.Lock()
	matched := s.matching(u)
	s.lock.Unlock()

	var o strings.Builder
	for i, e := range matched {
		if i > 0 {
			o.WriteString("; ")
		}

		o.WriteString(e.Name)
		o.WriteByte('=')
		o.WriteString(e.Value)
	}

	return o.String()
}

// Cookies implements http.CookieJar.
func (s *Set) Cookies(u *url.URL) []*http.Cookie {
	s.lock.Lock()
	matched := s.matching(u)
	s.lock.Unlock()

	if len(matched) == 0 {
		return nil
	}

	cookies := make([]*http.Cookie, 0, len(matched))
	for _, e := range matched {
		cookies = append(cookies, e.Cookie())
	}

	return cookies
}

// Store parses every Set-Cookie header and records the results.
func (s *Set) Store(u *url.URL, h http.Header) {
	if len(h.Values("Set-Cookie")) == 0 {
		return
	}

	s.SetCookies(u, ParseSetCookies(h))
}

// SetCookie records a single raw Set-Cookie value as though it had been received
// from u.  This is mainly useful for seeding a jar before a chain starts.
func (s *Set) SetCookie(u *url.URL, raw string) {
	s.Store(u, http.Header{"Set-Cookie": {raw}})
}

// SetCookies implements http.CookieJar.  Cookies that cannot be scoped to u
// are dropped.
func (s *Set) SetCookies(u *url.URL, cookies []*http.Cookie) {
	host, err := canonicalHost(u)
	if err != nil {
		s.log.Debug().Err(err).Msg("ignoring cookies")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	now := s.now()
	for _, c := range cookies {
		e, remove, err := newEntry(now, host, u, c)
		if err != nil {
			s.log.Debug().Err(err).Str("name", c.Name).Str("host", host).Msg("rejected cookie")
			continue
		}

		if remove {
			err = s.storage.Delete(e.Key())
		} else {
			err = s.storage.Upsert(e)
		}

		if err != nil {
			s.log.Error().Err(err).Str("name", c.Name).Msg("unable to store cookie")
		}
	}
}

// newEntry converts a received cookie into an Entry.  The remove flag is set
// when the cookie is already expired, i.e. the server is deleting it.
func newEntry(now time.Time, host string, u *url.URL, c *http.Cookie) (e Entry, remove bool, err error) {
	e.Domain, e.HostOnly, err = scope(host, c.Domain)
	if err != nil {
		return
	}

	e.Name = c.Name
	e.Value = c.Value
	e.Secure = c.Secure
	e.HttpOnly = c.HttpOnly

	if len(c.Path) > 0 && c.Path[0] == '/' {
		e.Path = c.Path
	} else {
		e.Path = defaultPath(u.EscapedPath())
	}

	switch {
	case c.MaxAge < 0:
		remove = true

	case c.MaxAge > 0:
		e.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)

	case !c.Expires.IsZero():
		if !c.Expires.After(now) {
			remove = true
		} else {
			e.Expires = c.Expires
		}
	}

	return
}

// ParseSetCookies parses all the Set-Cookie headers.  Malformed values are skipped.
func ParseSetCookies(h http.Header) []*http.Cookie {
	r := http.Response{Header: h}
	return r.Cookies()
}
