// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package overlay

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/overlayd/fault"
)

// most time an accept may be held back before it is refused
const maximumAcceptDelay = 2 * time.Second

// wait for the limiter, refuse if the wait would be too long
func limit(limiter *rate.Limiter) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.ErrNotAcceptingConnections
	}
	delay := r.Delay()
	if delay > maximumAcceptDelay {
		r.Cancel()
		return fault.ErrNotAcceptingConnections
	}
	time.Sleep(delay)
	return nil
}
