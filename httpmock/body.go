// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package httpmock

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrBodyClosed is returned by a BodyReadCloser once it has been closed.
var ErrBodyClosed = errors.New("the body has been closed")

// BodyReadCloser is an io.ReadCloser over an in-memory buffer that records
// whether it was closed.  Redirect tests use it to verify that intermediate
// hop responses are released.
type BodyReadCloser struct {
	lock   sync.Mutex
	b      *bytes.Reader
	closed bool
}

var _ io.ReadCloser = (*BodyReadCloser)(nil)

// Read reads from the buffer, or returns ErrBodyClosed if Close has been called.
func (brc *BodyReadCloser) Read(p []byte) (int, error) {
	brc.lock.Lock()
	defer brc.lock.Unlock()
	if brc.closed {
		return 0, ErrBodyClosed
	}

	return brc.b.Read(p)
}

// Close marks this body as closed.  A second call returns ErrBodyClosed.
func (brc *BodyReadCloser) Close() error {
	brc.lock.Lock()
	defer brc.lock.Unlock()
	if brc.closed {
		return ErrBodyClosed
	}

	brc.closed = true
	return nil
}

// Closed tests if Close has been called.
func (brc *BodyReadCloser) Closed() bool {
	brc.lock.Lock()
	defer brc.lock.Unlock()
	return brc.closed
}

// Closed tests if the given body, which must be a *BodyReadCloser, has been
// closed.  This function panics if body is any other type, which flags a
// test that is asserting on a body it did not create.
func Closed(body io.ReadCloser) bool {
	return body.(*BodyReadCloser).Closed()
}

// EmptyBody is a simpler way to invoke BodyBytes(nil)
func EmptyBody() *BodyReadCloser {
	return BodyBytes(nil)
}

// BodyString is syntactic sugar for creating a body from a string
func BodyString(b string) *BodyReadCloser {
	return BodyBytes([]byte(b))
}

// Bodyf creates a body using fmt.Sprintf
func Bodyf(format string, args ...interface{}) *BodyReadCloser {
	return BodyString(fmt.Sprintf(format, args...))
}

// BodyBytes is syntactic sugar for creating a body from a byte slice
func BodyBytes(b []byte) *BodyReadCloser {
	return &BodyReadCloser{
		b: bytes.NewReader(b),
	}
}
