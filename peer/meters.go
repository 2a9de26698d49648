// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"github.com/bitmark-inc/overlayd/counter"
)

// Counters - concrete storage for a set of Meters
type Counters struct {
	MessageRead  counter.Counter
	MessageWrite counter.Counter
	ByteRead     counter.Counter
	ByteWrite    counter.Counter
}

// Meters - meters that mark these counters
func (c *Counters) Meters() Meters {
	return Meters{
		MessageRead:  &c.MessageRead,
		MessageWrite: &c.MessageWrite,
		ByteRead:     &c.ByteRead,
		ByteWrite:    &c.ByteWrite,
	}
}
