// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"github.com/bitmark-inc/overlayd/fault"
	"github.com/bitmark-inc/overlayd/reputation"
	"github.com/bitmark-inc/overlayd/wire"
)

// hello deadline for an accepted connection, runs on the loop
func (c *Connection) helloTimerExpired() {
	if helloAwaited != c.hello || c.isClosing() {
		return
	}
	c.hello = helloExpired
	c.log.Infof("%s: %s", c, fault.ErrHelloTimeout)
	c.Drop()
}

func (c *Connection) receiveHello(message *wire.Message) {
	if c.isClosing() {
		return
	}

	switch c.hello {
	case helloExpired, helloRefused:
		c.log.Debugf("%s: hello ignored", c)
		return
	case helloReceived:
		c.log.Warnf("%s: %s", c, fault.ErrDuplicateHello)
		c.Drop()
		return
	}

	c.hello = helloReceived
	if nil != c.helloTimer {
		c.helloTimer.Stop()
		c.helloTimer = nil
	}

	hello, err := message.Hello()
	if nil != err {
		c.log.Warnf("%s: hello error: %s", c, err)
		c.Drop()
		return
	}

	err = c.validator.ValidateHello(hello)
	if nil != err {
		c.log.Warnf("%s: hello rejected: %s", c, err)
		c.Drop()
		return
	}

	c.remoteListeningPort = hello.ListeningPort
	c.log.Infof("%s: hello from: %q  version: %d  listening port: %d", c, hello.Agent, hello.Version, hello.ListeningPort)

	switch c.role {
	case Acceptor:
		c.acceptorHello()
	case Initiator:
		c.initiatorHello()
	}
}

// inbound: remember the remote, then admit or refuse it
func (c *Connection) acceptorHello() {
	_, err := c.loadOrCreate()
	if nil != err {
		c.log.Errorf("%s: reputation error: %s", c, err)
		c.Drop()
		return
	}

	if c.registry.IsAdmissible(c) {
		c.sendHello()
		c.sendPeers(nil)
		return
	}

	// offer alternatives before hanging up, reading stops here
	c.hello = helloRefused
	c.log.Infof("%s: not admitted, sending peers", c)
	c.sendPeers(c.Drop)
	c.loop.AfterFunc(c.helloTimeout, c.Drop)
}

// outbound: the remote answered, so its record is reset
func (c *Connection) initiatorHello() {
	record, err := c.loadOrCreate()
	if nil != err {
		c.log.Errorf("%s: reputation error: %s", c, err)
		c.Drop()
		return
	}
	record.Succeeded(c.clock())
	err = c.reputation.Store(record)
	if nil != err {
		c.log.Errorf("%s: reputation store error: %s", c, err)
		c.Drop()
	}
}

func (c *Connection) loadOrCreate() (*reputation.Record, error) {
	record, err := c.reputation.Load(c.address, c.remoteListeningPort)
	if nil == err {
		return record, nil
	}
	if fault.ErrRecordNotFound != err {
		return nil, err
	}
	record = reputation.NewRecord(c.address, c.remoteListeningPort, c.clock())
	err = c.reputation.Store(record)
	if nil != err {
		return nil, err
	}
	return record, nil
}

func (c *Connection) sendHello() {
	local := c.local
	message, err := wire.NewHello(&local)
	if nil != err {
		c.log.Errorf("%s: hello error: %s", c, err)
		c.Drop()
		return
	}
	c.SendMessage(message)
}

// send the known peers list, then runs after its write completes
func (c *Connection) sendPeers(then func()) {
	message, err := wire.NewPeers(c.registry.KnownPeers())
	if nil != err {
		c.log.Errorf("%s: peers error: %s", c, err)
		c.Drop()
		return
	}
	c.sendThen(message, then)
}
