// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/google/uuid"

	"github.com/bitmark-inc/overlayd/reactor"
	"github.com/bitmark-inc/overlayd/reputation"
	"github.com/bitmark-inc/overlayd/wire"
)

// Connection - one transport to one remote node
//
// apart from State and Drop, methods and fields are only used from the
// connection's loop
type Connection struct {
	log *logger.L
	id  string

	loop       *reactor.Loop
	registry   Registry
	reputation reputation.Store
	validator  Validator
	handler    Handler
	meters     Meters
	dialer     Dialer
	clock      Clock
	local      wire.Hello

	role  Role
	state int32 // State, changed by atomic operations only

	address             string
	remoteListeningPort uint16

	transport net.Conn
	cancel    context.CancelFunc // aborts a pending dial

	incomingHeader wire.Header
	incomingBody   []byte

	writes  *writeQueue
	closing chan struct{} // closed by teardown, stops the writer

	helloTimeout time.Duration
	helloTimer   *reactor.Timer
	hello        helloOutcome
}

// create a connection in the Connecting state
func newConnection(role Role, address string, collaborators *Collaborators) *Connection {
	c := &Connection{
		log:          logger.New("peer"),
		id:           uuid.New().String(),
		loop:         collaborators.Loop,
		registry:     collaborators.Registry,
		reputation:   collaborators.Reputation,
		validator:    collaborators.Validator,
		handler:      collaborators.Handler,
		meters:       collaborators.Meters,
		dialer:       collaborators.Dialer,
		clock:        collaborators.Clock,
		local:        collaborators.Local,
		role:         role,
		state:        int32(StateConnecting),
		address:      address,
		writes:       newWriteQueue(),
		closing:      make(chan struct{}),
		helloTimeout: collaborators.HelloTimeout,
		hello:        helloAwaited,
	}
	if nil == c.dialer {
		c.dialer = &net.Dialer{}
	}
	if nil == c.clock {
		c.clock = time.Now
	}
	if c.helloTimeout <= 0 {
		c.helloTimeout = DefaultHelloTimeout
	}
	return c
}

// Initiate - dial address:port; the connection is returned at once in
// the Connecting state
//
// call from the loop so that the registry can record the connection
// before any completion runs
func Initiate(address string, port uint16, collaborators *Collaborators) *Connection {
	c := newConnection(Initiator, address, collaborators)
	c.remoteListeningPort = port

	endpoint := net.JoinHostPort(address, strconv.Itoa(int(port)))
	c.log.Debugf("%s: initiate to: %s", c, endpoint)

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	go func() {
		transport, err := c.dialer.DialContext(ctx, "tcp", endpoint)
		ok := c.loop.Post(func() {
			c.connectHandler(transport, err)
		})
		if !ok && nil != transport {
			transport.Close()
		}
	}()

	return c
}

// Accept - adopt an inbound transport, arm the hello deadline and
// start reading
//
// call from the loop, as for Initiate
func Accept(transport net.Conn, collaborators *Collaborators) *Connection {
	address := transport.RemoteAddr().String()
	if host, _, err := net.SplitHostPort(address); nil == err {
		address = host
	}

	c := newConnection(Acceptor, address, collaborators)
	c.log.Debugf("%s: accept", c)

	c.transport = transport
	c.activate()
	go c.writer(transport)

	c.helloTimer = c.loop.AfterFunc(c.helloTimeout, c.helloTimerExpired)

	c.startRead()
	return c
}

// outbound dial completed
func (c *Connection) connectHandler(transport net.Conn, err error) {
	if nil != err {
		c.log.Debugf("%s: connect error: %s", c, err)
		c.Drop()
		return
	}

	// dropped while dialling
	if !c.activate() {
		transport.Close()
		return
	}

	c.transport = transport
	go c.writer(transport)

	// the remote's gate expects us to speak first
	c.sendHello()
	c.startRead()
}

// Connecting -> Active, fails if teardown has begun
func (c *Connection) activate() bool {
	return atomic.CompareAndSwapInt32(&c.state, int32(StateConnecting), int32(StateActive))
}

// State - current state, safe from any goroutine
func (c *Connection) State() State {
	return State(atomic.LoadInt32(&c.state))
}

func (c *Connection) isClosing() bool {
	return StateClosing == c.State()
}

// ID - unique name of this connection
func (c *Connection) ID() string {
	return c.id
}

// Role - fixed at construction
func (c *Connection) Role() Role {
	return c.role
}

// Address - remote host
func (c *Connection) Address() string {
	return c.address
}

// RemoteListeningPort - port the remote accepts connections on; for
// an Acceptor this is zero until the hello arrives
func (c *Connection) RemoteListeningPort() uint16 {
	return c.remoteListeningPort
}

// Handshaken - true once a valid hello has been processed
func (c *Connection) Handshaken() bool {
	return helloReceived == c.hello
}

func (c *Connection) String() string {
	return fmt.Sprintf("%s %s %s", c.id[:8], c.role, c.address)
}
