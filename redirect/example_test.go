// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redirect_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/xmidt-org/redirectaux/client"
	"github.com/xmidt-org/redirectaux/cookie"
	"github.com/xmidt-org/redirectaux/redirect"
)

func newExampleServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(rw http.ResponseWriter, r *http.Request) {
		http.SetCookie(rw, &http.Cookie{Name: "session", Value: "abc123"})
		http.Redirect(rw, r, "/landing", http.StatusFound)
	})

	mux.HandleFunc("/landing", func(rw http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(rw, "%s landing, cookie: %s", r.Method, r.Header.Get("Cookie"))
	})

	return httptest.NewServer(mux)
}

func ExampleNew() {
	server := newExampleServer()
	defer server.Close()

	c := client.NewChain(
		redirect.New(redirect.Config{
			Jar: cookie.New(cookie.Options{}),
		}),
	).Then(client.NewHTTPClient(nil))

	request, _ := http.NewRequest(http.MethodPost, server.URL+"/start", nil)
	response, err := c.Do(request)
	if err != nil {
		fmt.Println(err)
		return
	}

	defer response.Body.Close()
	body, _ := io.ReadAll(response.Body)
	fmt.Println(response.StatusCode)
	fmt.Println(string(body))

	// Output:
	// 200
	// GET landing, cookie: session=abc123
}

func ExampleWithFollow() {
	server := newExampleServer()
	defer server.Close()

	f := redirect.NewFollower(redirect.Config{}, nil)
	request, _ := http.NewRequestWithContext(
		redirect.WithFollow(context.Background(), false),
		http.MethodGet,
		server.URL+"/start",
		nil,
	)

	response, err := f.Do(request)
	if err != nil {
		fmt.Println(err)
		return
	}

	defer response.Body.Close()
	fmt.Println(response.StatusCode)
	fmt.Println(response.Header.Get("Location"))

	// Output:
	// 302
	// /landing
}

func ExampleTooManyRedirectsError() {
	server := newExampleServer()
	defer server.Close()

	f := redirect.NewFollower(redirect.Config{}, nil)
	request, _ := http.NewRequestWithContext(
		redirect.WithMaxRedirects(context.Background(), 0),
		http.MethodGet,
		server.URL+"/start",
		nil,
	)

	response, err := f.Do(request)
	var tmre *redirect.TooManyRedirectsError
	if errors.As(err, &tmre) {
		fmt.Println(response.StatusCode)
		fmt.Println(tmre.Max, len(tmre.Via))
	}

	// Output:
	// 302
	// 0 1
}
