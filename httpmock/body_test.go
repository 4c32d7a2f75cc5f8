// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package httpmock

import (
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type BodyReadCloserTestSuite struct {
	suite.Suite
}

// drain reads everything, then verifies the close bookkeeping.
func (suite *BodyReadCloserTestSuite) drain(body *BodyReadCloser, expected string) {
	suite.Require().NotNil(body)

	actual, err := io.ReadAll(body)
	suite.Require().NoError(err)
	suite.Equal(expected, string(actual))

	suite.False(Closed(body))
	suite.NoError(body.Close())
	suite.True(Closed(body))
	suite.ErrorIs(body.Close(), ErrBodyClosed)

	n, err := body.Read(make([]byte, 8))
	suite.Zero(n)
	suite.ErrorIs(err, ErrBodyClosed)
}

func (suite *BodyReadCloserTestSuite) TestConstructors() {
	testCases := []struct {
		name     string
		body     *BodyReadCloser
		expected string
	}{
		{name: "Empty", body: EmptyBody(), expected: ""},
		{name: "Bytes", body: BodyBytes([]byte("moved")), expected: "moved"},
		{name: "String", body: BodyString("see other"), expected: "see other"},
		{name: "Format", body: Bodyf("hop %d of %d", 2, 10), expected: "hop 2 of 10"},
	}

	for _, testCase := range testCases {
		suite.Run(testCase.name, func() {
			suite.drain(testCase.body, testCase.expected)
		})
	}
}

func (suite *BodyReadCloserTestSuite) TestCloseUnread() {
	body := BodyString("an intermediate redirect body nobody reads")
	suite.NoError(body.Close())
	suite.True(body.Closed())

	_, err := io.ReadAll(body)
	suite.ErrorIs(err, ErrBodyClosed)
}

func (suite *BodyReadCloserTestSuite) TestConcurrentClose() {
	var (
		body = BodyString("race")
		wg   sync.WaitGroup
		errs = make(chan error, 5)
	)

	for i := 0; i < cap(errs); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- body.Close()
		}()
	}

	wg.Wait()
	close(errs)

	var succeeded int
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			suite.ErrorIs(err, ErrBodyClosed)
		}
	}

	suite.Equal(1, succeeded)
}

func (suite *BodyReadCloserTestSuite) TestForeignBody() {
	suite.Panics(func() {
		Closed(io.NopCloser(strings.NewReader("not created by httpmock")))
	})
}

func TestBodyReadCloser(t *testing.T) {
	suite.Run(t, new(BodyReadCloserTestSuite))
}
