// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"net"
	"sync"

	"github.com/bitmark-inc/overlayd/wire"
)

// an outstanding write, the queue entry and then the completion
// closure keep buffer alive until the completion has run
type pendingWrite struct {
	buffer []byte
	then   func() // optional, runs on the loop after the write completes
}

// unbounded FIFO between the loop and the writer goroutine so that a
// send never blocks the loop
type writeQueue struct {
	sync.Mutex
	items []*pendingWrite
	wake  chan struct{}
}

func newWriteQueue() *writeQueue {
	return &writeQueue{
		items: make([]*pendingWrite, 0, 8),
		wake:  make(chan struct{}, 1),
	}
}

func (q *writeQueue) push(w *pendingWrite) {
	q.Lock()
	q.items = append(q.items, w)
	q.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// wait for the next write; false once closing is closed, anything
// still queued is abandoned
func (q *writeQueue) pop(closing <-chan struct{}) (*pendingWrite, bool) {
	for {
		select {
		case <-closing:
			return nil, false
		default:
		}

		q.Lock()
		if len(q.items) > 0 {
			w := q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.Unlock()
			return w, true
		}
		q.Unlock()

		select {
		case <-q.wake:
		case <-closing:
			return nil, false
		}
	}
}

// Send - queue an already packed frame
//
// the frame is written in full, in the order of Send calls; the
// caller must not modify packed afterwards
func (c *Connection) Send(packed []byte) {
	c.send(&pendingWrite{buffer: packed})
}

// SendMessage - pack and queue a message
func (c *Connection) SendMessage(message *wire.Message) error {
	return c.sendThen(message, nil)
}

func (c *Connection) sendThen(message *wire.Message, then func()) error {
	packed, err := wire.Pack(message)
	if nil != err {
		c.log.Errorf("%s: pack %s error: %s", c, message.Type, err)
		return err
	}
	c.send(&pendingWrite{buffer: packed, then: then})
	return nil
}

func (c *Connection) send(w *pendingWrite) {
	if c.isClosing() {
		return
	}
	c.writes.push(w)
}

// one per transport, writes queued buffers in order until teardown
func (c *Connection) writer(transport net.Conn) {
	for {
		w, ok := c.writes.pop(c.closing)
		if !ok {
			return
		}
		n, err := transport.Write(w.buffer)
		posted := c.loop.Post(func() {
			c.writeHandler(w, n, err)
		})
		if !posted {
			transport.Close()
			return
		}
	}
}

// write completion, on the loop
func (c *Connection) writeHandler(w *pendingWrite, n int, err error) {
	if nil != err {
		if !c.isClosing() {
			c.log.Debugf("%s: write error: %s", c, err)
			c.Drop()
		}
	} else {
		c.meters.MessageWrite.Mark(1)
		c.meters.ByteWrite.Mark(uint64(n))
	}

	if nil != w.then {
		w.then()
	}
}
