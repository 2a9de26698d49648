// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"context"
	"net"
	"time"

	"github.com/bitmark-inc/overlayd/reactor"
	"github.com/bitmark-inc/overlayd/reputation"
	"github.com/bitmark-inc/overlayd/wire"
)

// DefaultHelloTimeout - how long an accepted connection may stay
// silent
const DefaultHelloTimeout = 2000 * time.Millisecond

// Registry - the set of live connections
type Registry interface {
	// admission decision for an inbound peer that has said hello
	IsAdmissible(connection *Connection) bool

	// called once, from the loop, when a connection is torn down
	Unregister(connection *Connection)

	// addresses to offer a remote in a peers message
	KnownPeers() []wire.PeerAddress
}

// Validator - base hello validation: protocol version and
// capabilities
type Validator interface {
	ValidateHello(hello *wire.Hello) error
}

// Handler - receives every message other than hello, on the loop
type Handler interface {
	HandleMessage(connection *Connection, message *wire.Message)
}

// Meter - an increment only counter
type Meter interface {
	Mark(n uint64)
}

// Meters - traffic counters shared by connections
type Meters struct {
	MessageRead  Meter
	MessageWrite Meter
	ByteRead     Meter
	ByteWrite    Meter
}

// Dialer - opens outbound transports, net.Dialer satisfies this
type Dialer interface {
	DialContext(ctx context.Context, network string, address string) (net.Conn, error)
}

// Clock - source of "now" for reputation records
type Clock func() time.Time

// Collaborators - everything a connection needs from outside, given at
// construction
type Collaborators struct {
	Loop       *reactor.Loop
	Registry   Registry
	Reputation reputation.Store
	Validator  Validator
	Handler    Handler
	Meters     Meters

	// optional, defaults to net.Dialer
	Dialer Dialer

	// optional, defaults to time.Now
	Clock Clock

	// our own hello, sent to every remote
	Local wire.Hello

	// optional, defaults to DefaultHelloTimeout
	HelloTimeout time.Duration
}
