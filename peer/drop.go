// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"sync/atomic"
)

// transports such as *net.TCPConn that can shut down each direction
type halfCloser interface {
	CloseRead() error
	CloseWrite() error
}

// Drop - begin teardown; safe from any goroutine, only the first call
// has any effect
//
// the teardown itself runs later on the loop, never inside the caller
func (c *Connection) Drop() {
	for {
		state := atomic.LoadInt32(&c.state)
		if int32(StateClosing) == state {
			return
		}
		if atomic.CompareAndSwapInt32(&c.state, state, int32(StateClosing)) {
			break
		}
	}

	c.log.Debugf("%s: drop", c)

	if nil != c.cancel {
		c.cancel()
	}

	if !c.loop.Post(c.teardown) {
		// loop has stopped, nothing else can run for this connection
		c.teardown()
	}
}

// runs exactly once
func (c *Connection) teardown() {
	c.registry.Unregister(c)

	close(c.closing)

	if nil != c.helloTimer {
		c.helloTimer.Stop()
		c.helloTimer = nil
	}

	transport := c.transport
	if nil == transport {
		return
	}

	if hc, ok := transport.(halfCloser); ok {
		if err := hc.CloseRead(); nil != err {
			c.log.Debugf("%s: shutdown read error: %s", c, err)
		}
		if err := hc.CloseWrite(); nil != err {
			c.log.Debugf("%s: shutdown write error: %s", c, err)
		}
	}
	if err := transport.Close(); nil != err {
		c.log.Warnf("%s: close error: %s", c, err)
	}
}
