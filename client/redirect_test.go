// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type RedirectTestSuite struct {
	suite.Suite

	server *httptest.Server
}

func (suite *RedirectTestSuite) SetupSuite() {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(rw http.ResponseWriter, r *http.Request) {
		http.SetCookie(rw, &http.Cookie{Name: "ham", Value: "eggs"})
		rw.Header().Set("Location", "/landing")
		rw.WriteHeader(http.StatusFound)
		io.WriteString(rw, "redirecting")
	})

	mux.HandleFunc("/landing", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
	})

	suite.server = httptest.NewServer(mux)
}

func (suite *RedirectTestSuite) TearDownSuite() {
	suite.server.Close()
}

func (suite *RedirectTestSuite) assertSingleHop(c *http.Client) {
	suite.Require().NotNil(c)
	response, err := c.Get(suite.server.URL + "/start")
	suite.Require().NoError(err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	suite.Require().NoError(err)
	suite.Equal(http.StatusFound, response.StatusCode)
	suite.Equal("/landing", response.Header.Get("Location"))
	suite.Equal("redirecting", string(body))
}

func (suite *RedirectTestSuite) TestUseLastResponse() {
	suite.ErrorIs(
		UseLastResponse(nil, nil),
		http.ErrUseLastResponse,
	)
}

func (suite *RedirectTestSuite) TestNewHTTPClient() {
	suite.Run("NilTransport", func() {
		c := NewHTTPClient(nil)
		suite.Equal(http.DefaultTransport, c.Transport)
		suite.Nil(c.Jar)
		suite.assertSingleHop(c)
	})

	suite.Run("CustomTransport", func() {
		transport := new(http.Transport)
		defer transport.CloseIdleConnections()

		c := NewHTTPClient(transport)
		suite.Same(transport, c.Transport)
		suite.assertSingleHop(c)
	})
}

func (suite *RedirectTestSuite) TestSingleHop() {
	suite.Run("Nil", func() {
		suite.assertSingleHop(SingleHop(nil))
	})

	suite.Run("Clone", func() {
		jar, err := cookiejar.New(nil)
		suite.Require().NoError(err)

		original := &http.Client{
			Jar:     jar,
			Timeout: 5 * time.Second,
		}

		c := SingleHop(original)
		suite.NotSame(original, c)
		suite.Nil(c.Jar)
		suite.Equal(5*time.Second, c.Timeout)

		// the original is untouched
		suite.NotNil(original.Jar)
		suite.Nil(original.CheckRedirect)

		suite.assertSingleHop(c)
	})
}

func TestRedirect(t *testing.T) {
	suite.Run(t, new(RedirectTestSuite))
}
