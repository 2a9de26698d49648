// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package overlay

import (
	"net"
	"sort"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/overlayd/fault"
	"github.com/bitmark-inc/overlayd/messagebus"
	"github.com/bitmark-inc/overlayd/peer"
	"github.com/bitmark-inc/overlayd/reactor"
	"github.com/bitmark-inc/overlayd/reputation"
	"github.com/bitmark-inc/overlayd/util"
	"github.com/bitmark-inc/overlayd/wire"
)

const (
	// how long a learned address is offered to others
	knownPeerExpiry = 30 * time.Minute
	knownPeerPurge  = 5 * time.Minute

	// most addresses sent in one peers message
	maximumPeersOffered = 100

	// command sent to the connector when an outbound connection ends
	CommandDisconnected = "disconnected"
)

// Options - everything a Manager needs
type Options struct {
	Loop               *reactor.Loop
	Reputation         reputation.Store
	Local              wire.Hello
	MaximumConnections int
	HelloTimeout       time.Duration

	// optional: receives messages other than hello and peers
	Upstream peer.Handler

	// optional: defaults to net.Dialer and time.Now
	Dialer peer.Dialer
	Clock  peer.Clock

	// optional: receives CommandDisconnected
	Events *messagebus.Queue
}

// Manager - the registry of live connections
//
// connection state is only touched on the loop; exported methods that
// are called from other goroutines go through loop.Do
type Manager struct {
	log *logger.L

	loop               *reactor.Loop
	reputation         reputation.Store
	clock              peer.Clock
	upstream           peer.Handler
	events             *messagebus.Queue
	maximumConnections int

	connections map[string]*peer.Connection
	known       *cache.Cache
	counters    peer.Counters

	collaborators peer.Collaborators
}

// NewManager - create a manager for connections on options.Loop
func NewManager(options *Options) (*Manager, error) {
	if options.MaximumConnections <= 0 {
		return nil, fault.ErrZeroMaximumConnections
	}
	if options.HelloTimeout < 0 {
		return nil, fault.ErrZeroHelloTimeout
	}

	m := &Manager{
		log:                logger.New("overlay"),
		loop:               options.Loop,
		reputation:         options.Reputation,
		clock:              options.Clock,
		upstream:           options.Upstream,
		events:             options.Events,
		maximumConnections: options.MaximumConnections,
		connections:        make(map[string]*peer.Connection),
		known:              cache.New(knownPeerExpiry, knownPeerPurge),
	}
	if nil == m.clock {
		m.clock = time.Now
	}

	m.collaborators = peer.Collaborators{
		Loop:         options.Loop,
		Registry:     m,
		Reputation:   options.Reputation,
		Validator:    NewValidator(options.Local.Version, options.Local.NetworkID),
		Handler:      m,
		Meters:       m.counters.Meters(),
		Dialer:       options.Dialer,
		Clock:        m.clock,
		Local:        options.Local,
		HelloTimeout: options.HelloTimeout,
	}

	return m, nil
}

// Accept - hand an inbound transport to a new connection
//
// returns false if the loop has stopped, the caller still owns the
// transport in that case
func (m *Manager) Accept(transport net.Conn) bool {
	return m.loop.Do(func() {
		c := peer.Accept(transport, &m.collaborators)
		m.connections[c.ID()] = c
	})
}

// Connect - dial address:port unless already connected or its
// reputation record says it is too soon
//
// the attempt is counted as a failure until the remote's hello resets
// the record
func (m *Manager) Connect(address string, port uint16) bool {
	started := false
	m.loop.Do(func() {
		if m.connected(address, port) {
			return
		}

		now := m.clock()
		record, err := m.reputation.Load(address, port)
		if fault.ErrRecordNotFound == err {
			record = reputation.NewRecord(address, port, now)
		} else if nil != err {
			m.log.Errorf("load reputation for: %s  error: %s", util.CanonicalIPandPort(address, port), err)
			return
		}
		if !record.Due(now) {
			m.log.Debugf("too soon to connect to: %s  failures: %d", util.CanonicalIPandPort(address, port), record.NumberOfFailures)
			return
		}

		record.Failed(now)
		err = m.reputation.Store(record)
		if nil != err {
			m.log.Errorf("store reputation for: %s  error: %s", util.CanonicalIPandPort(address, port), err)
			return
		}

		c := peer.Initiate(address, port, &m.collaborators)
		m.connections[c.ID()] = c
		started = true
	})
	return started
}

// Connected - true if any connection is to address:port
func (m *Manager) Connected(address string, port uint16) bool {
	result := false
	m.loop.Do(func() {
		result = m.connected(address, port)
	})
	return result
}

func (m *Manager) connected(address string, port uint16) bool {
	for _, c := range m.connections {
		if address == c.Address() && port == c.RemoteListeningPort() {
			return true
		}
	}
	return false
}

// Count - number of registered connections
func (m *Manager) Count() int {
	n := 0
	m.loop.Do(func() {
		n = len(m.connections)
	})
	return n
}

// Counters - traffic totals over all connections
func (m *Manager) Counters() *peer.Counters {
	return &m.counters
}

// IsAdmissible - room for one more and not a second connection to the
// same node
func (m *Manager) IsAdmissible(c *peer.Connection) bool {
	others := 0
	for id, other := range m.connections {
		if id == c.ID() {
			continue
		}
		others += 1
		if other.Handshaken() && other.Address() == c.Address() && other.RemoteListeningPort() == c.RemoteListeningPort() {
			m.log.Infof("%s: already connected", c)
			return false
		}
	}
	if others >= m.maximumConnections {
		m.log.Infof("%s: connection limit: %d reached", c, m.maximumConnections)
		return false
	}

	m.remember(c.Address(), c.RemoteListeningPort())
	return true
}

// Unregister - forget a connection that is being torn down
func (m *Manager) Unregister(c *peer.Connection) {
	if _, ok := m.connections[c.ID()]; !ok {
		return
	}
	delete(m.connections, c.ID())
	m.log.Debugf("%s: unregistered  remaining: %d", c, len(m.connections))

	if peer.Initiator == c.Role() && nil != m.events {
		m.events.Send(CommandDisconnected, util.CanonicalIPandPort(c.Address(), c.RemoteListeningPort()))
	}
}

// KnownPeers - the addresses learned so far, in a stable order
func (m *Manager) KnownPeers() []wire.PeerAddress {
	items := m.known.Items()

	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > maximumPeersOffered {
		keys = keys[:maximumPeersOffered]
	}

	addresses := make([]wire.PeerAddress, 0, len(keys))
	for _, key := range keys {
		addresses = append(addresses, items[key].Object.(wire.PeerAddress))
	}
	return addresses
}

func (m *Manager) remember(host string, port uint16) {
	if "" == host || 0 == port {
		return
	}
	m.known.Set(util.CanonicalIPandPort(host, port), wire.PeerAddress{Host: host, Port: port}, cache.DefaultExpiration)
}

// HandleMessage - peers traffic is handled here, everything else goes
// upstream
func (m *Manager) HandleMessage(c *peer.Connection, message *wire.Message) {
	switch message.Type {

	case wire.GetPeersMessage:
		reply, err := wire.NewPeers(m.KnownPeers())
		if nil != err {
			m.log.Errorf("%s: peers error: %s", c, err)
			return
		}
		_ = c.SendMessage(reply)

	case wire.PeersMessage:
		peers, err := message.Peers()
		if nil != err {
			m.log.Warnf("%s: peers error: %s", c, err)
			c.Drop()
			return
		}
		for _, address := range peers.Addresses {
			if nil == net.ParseIP(address.Host) {
				m.log.Debugf("%s: ignore peer: %q", c, address.Host)
				continue
			}
			m.remember(address.Host, address.Port)
		}
		m.log.Debugf("%s: received %d peers", c, len(peers.Addresses))

	default:
		if nil != m.upstream {
			m.upstream.HandleMessage(c, message)
			return
		}
		m.log.Debugf("%s: unhandled: %s  payload: %d bytes", c, message.Type, len(message.Payload))
	}
}

// DropAll - tear down every connection, used at shutdown before the
// loop stops
func (m *Manager) DropAll() {
	m.loop.Do(func() {
		for _, c := range m.connections {
			c.Drop()
		}
	})
}
