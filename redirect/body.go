// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redirect

import (
	"context"
	"io"
	"sync"
)

// cancelBody releases the contexts of a chain when the final response
// body is closed.  Reads of a response body fail once its request context
// is canceled, so the cancel cannot happen when Do returns.
type cancelBody struct {
	io.ReadCloser

	once    sync.Once
	cancels []context.CancelFunc
}

func (cb *cancelBody) Close() error {
	err := cb.ReadCloser.Close()
	cb.once.Do(func() {
		for _, c := range cb.cancels {
			c()
		}
	})

	return err
}
