// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"io"

	"github.com/bitmark-inc/overlayd/fault"
	"github.com/bitmark-inc/overlayd/wire"
)

// issue one read of exactly len(buffer) bytes; the completion runs on
// the loop
//
// only one read is ever outstanding: the next one is issued from the
// completion of the previous one
func (c *Connection) asyncRead(buffer []byte, completion func(int, error)) {
	transport := c.transport
	go func() {
		n, err := io.ReadFull(transport, buffer)
		posted := c.loop.Post(func() {
			completion(n, err)
		})

		// loop stopped without a teardown
		if !posted {
			transport.Close()
		}
	}()
}

// start reading the next frame
func (c *Connection) startRead() {
	if c.isClosing() || helloRefused == c.hello {
		return
	}
	c.asyncRead(c.incomingHeader[:], c.readHeaderHandler)
}

func (c *Connection) readHeaderHandler(n int, err error) {
	c.meters.ByteRead.Mark(uint64(n))

	if nil != err {
		if !c.isClosing() {
			c.log.Warnf("%s: read header error: %s", c, err)
			c.Drop()
		}
		return
	}
	if c.isClosing() {
		return
	}

	length, err := wire.DecodeLength(c.incomingHeader)
	if nil != err {
		c.log.Warnf("%s: message size unacceptable: %d  error: %s", c, c.incomingHeader.Length(), err)
		c.Drop()
		return
	}

	c.incomingBody = make([]byte, length)
	c.asyncRead(c.incomingBody, c.readBodyHandler)
}

func (c *Connection) readBodyHandler(n int, err error) {
	c.meters.ByteRead.Mark(uint64(n))

	if nil != err {
		if !c.isClosing() {
			c.log.Warnf("%s: read body error: %s", c, err)
			c.Drop()
		}
		return
	}
	if c.isClosing() {
		return
	}

	message, err := wire.UnpackMessage(c.incomingBody)
	c.incomingBody = nil
	if nil != err {
		c.log.Warnf("%s: receive error: %s", c, err)
		c.Drop()
		return
	}
	c.meters.MessageRead.Mark(1)

	c.receive(message)

	c.startRead()
}

// dispatch one decoded message
//
// only hello passes the gate until a hello has been accepted; an
// initiator may also take the peers list a refusing remote sends
// instead of its hello
func (c *Connection) receive(message *wire.Message) {
	c.log.Debugf("%s: received: %s", c, message.Type)

	if wire.HelloMessage == message.Type {
		c.receiveHello(message)
		return
	}

	if helloRefused == c.hello {
		return
	}
	if helloReceived != c.hello && !c.peersBeforeHello(message) {
		c.log.Warnf("%s: %s: %s", c, fault.ErrMessageBeforeHello, message.Type)
		c.Drop()
		return
	}

	c.handler.HandleMessage(c, message)
}

// a refusing acceptor answers an initiator's hello with peers only
func (c *Connection) peersBeforeHello(message *wire.Message) bool {
	return Initiator == c.role && wire.PeersMessage == message.Type
}
