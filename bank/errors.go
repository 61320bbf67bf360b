// SPDX-License-Identifier: EPL-2.0

package bank

import "errors"

var (
	// ErrBadSample reports sample data that could not be decoded at load
	// time (a compressed sample with an unreadable stream).
	ErrBadSample = errors.New("unreadable sample data")
)
