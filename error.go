// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package redirectaux

import "errors"

// IsTemporary tests if the given error is marked as a temporary error.
// This method returns true if the given error or what the error wraps
// exposes a Temporary() bool method that returns true.
//
// This function uses errors.As to traverse the error wrappers.
//
// See: https://pkg.go.dev/net/#Error
func IsTemporary(err error) bool {
	type temporary interface {
		Temporary() bool
	}

	var te temporary
	if errors.As(err, &te) {
		return te.Temporary()
	}

	return false
}
