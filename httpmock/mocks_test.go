// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package httpmock

import "github.com/stretchr/testify/mock"

// testingT counts the calls a RoundTripper or RequestChecker makes against
// its mock.TestingT, so tests can verify that a mismatched hop is reported
// without failing the enclosing test.
type testingT struct {
	T mock.TestingT

	Logs     int
	Errors   int
	Failures int
}

var _ mock.TestingT = (*testingT)(nil)

func wrapTestingT(next mock.TestingT) *testingT {
	return &testingT{T: next}
}

func (t *testingT) Logf(format string, args ...interface{}) {
	t.Logs++
	t.T.Logf("recorded Logf: "+format, args...)
}

func (t *testingT) Errorf(format string, args ...interface{}) {
	t.Errors++
	t.T.Logf("recorded Errorf: "+format, args...)
}

func (t *testingT) FailNow() {
	t.Failures++
	t.T.Logf("recorded FailNow")
}
