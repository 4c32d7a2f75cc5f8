/*
Package redirect implements redirect following for HTTP clients.

A Follower decorates a redirectaux.Client that executes exactly one HTTP
transaction per call, such as an *http.Client created with client.NewHTTPClient.
Each 3xx response is examined and, when the configured Policy allows, a new
request is built for the resolved Location.  Cookies set along the way are
recorded in an optional cookie.Jar before the next hop is issued.

The preferred way to use this package is by creating a middleware constructor
with New:

	jar := cookie.New(cookie.Options{})
	ctor := redirect.New(redirect.Config{
	  MaxRedirects: 5,
	  Jar:          jar,
	})

	c := ctor(client.NewHTTPClient(nil))

Behavior can be altered for an individual call through the request context:

	ctx := redirect.WithCrossProtocol(request.Context(), true)
	response, err := c.Do(request.WithContext(ctx))

A cross-protocol redirect that is not allowed is not an error.  The 3xx
response is returned to the caller as is, along with a nil error.
*/
package redirect
