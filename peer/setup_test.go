// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer_test

import (
	"context"
	"io"
	"net"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"

	"github.com/bitmark-inc/overlayd/background"
	"github.com/bitmark-inc/overlayd/peer"
	"github.com/bitmark-inc/overlayd/peer/mocks"
	"github.com/bitmark-inc/overlayd/reactor"
	"github.com/bitmark-inc/overlayd/reputation"
	"github.com/bitmark-inc/overlayd/wire"
)

const (
	testingDirName = "testing"
	testNetwork    = "testing"
	testPort       = 2136
	remotePort     = 2137
	waitFor        = 3 * time.Second
	tick           = 5 * time.Millisecond
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

// reputation store that counts calls
type countingStore struct {
	db     *reputation.DB
	loads  int32
	stores int32
}

func (s *countingStore) Load(address string, port uint16) (*reputation.Record, error) {
	atomic.AddInt32(&s.loads, 1)
	return s.db.Load(address, port)
}

func (s *countingStore) Store(record *reputation.Record) error {
	atomic.AddInt32(&s.stores, 1)
	return s.db.Store(record)
}

func (s *countingStore) calls() int32 {
	return atomic.LoadInt32(&s.loads) + atomic.LoadInt32(&s.stores)
}

// transport that counts shutdown calls
type countingConn struct {
	net.Conn
	closes      int32
	closeReads  int32
	closeWrites int32
}

func (c *countingConn) Close() error {
	atomic.AddInt32(&c.closes, 1)
	return c.Conn.Close()
}

func (c *countingConn) CloseRead() error {
	atomic.AddInt32(&c.closeReads, 1)
	return nil
}

func (c *countingConn) CloseWrite() error {
	atomic.AddInt32(&c.closeWrites, 1)
	return nil
}

// dialer that hands out one end of a pipe
type pipeDialer struct {
	remote chan net.Conn
	err    error
}

func (d *pipeDialer) DialContext(ctx context.Context, network string, address string) (net.Conn, error) {
	if nil != d.err {
		return nil, d.err
	}
	local, remote := net.Pipe()
	d.remote <- remote
	return local, nil
}

type fixture struct {
	ctl       *gomock.Controller
	loop      *reactor.Loop
	bg        *background.T
	db        *reputation.DB
	store     *countingStore
	registry  *mocks.MockRegistry
	validator *mocks.MockValidator
	handler   *mocks.MockHandler
	counters  *peer.Counters
	now       time.Time

	collaborators *peer.Collaborators
}

func newFixture(t *testing.T) *fixture {
	db, err := reputation.OpenMemory()
	if nil != err {
		t.Fatalf("open reputation error: %s", err)
	}

	ctl := gomock.NewController(t)
	loop := reactor.New("test-loop")

	f := &fixture{
		ctl:       ctl,
		loop:      loop,
		bg:        background.Start(background.Processes{loop}, nil),
		db:        db,
		store:     &countingStore{db: db},
		registry:  mocks.NewMockRegistry(ctl),
		validator: mocks.NewMockValidator(ctl),
		handler:   mocks.NewMockHandler(ctl),
		counters:  &peer.Counters{},
		now:       time.Unix(1600000000, 0),
	}

	f.collaborators = &peer.Collaborators{
		Loop:       f.loop,
		Registry:   f.registry,
		Reputation: f.store,
		Validator:  f.validator,
		Handler:    f.handler,
		Meters:     f.counters.Meters(),
		Clock: func() time.Time {
			return f.now
		},
		Local: wire.Hello{
			Version:       1,
			NetworkID:     testNetwork,
			ListeningPort: testPort,
			Agent:         "overlayd-test",
		},
	}
	return f
}

// stop the loop before checking the expectations so no calls race
// the controller
func (f *fixture) finish() {
	f.bg.Stop()
	f.ctl.Finish()
	f.db.Close()
}

func (f *fixture) accept(transport net.Conn) *peer.Connection {
	var c *peer.Connection
	f.loop.Do(func() {
		c = peer.Accept(transport, f.collaborators)
	})
	return c
}

func (f *fixture) initiate(address string, port uint16) *peer.Connection {
	var c *peer.Connection
	f.loop.Do(func() {
		c = peer.Initiate(address, port, f.collaborators)
	})
	return c
}

func (f *fixture) handshaken(c *peer.Connection) bool {
	result := false
	f.loop.Do(func() {
		result = c.Handshaken()
	})
	return result
}

// expect exactly one unregister, the channel closes when it happens
func (f *fixture) expectUnregister() <-chan struct{} {
	done := make(chan struct{})
	f.registry.EXPECT().Unregister(gomock.Any()).Do(func(c *peer.Connection) {
		close(done)
	}).Times(1)
	return done
}

func remoteHello() *wire.Hello {
	return &wire.Hello{
		Version:       1,
		NetworkID:     testNetwork,
		ListeningPort: remotePort,
		Agent:         "remote",
	}
}

func writeFrame(conn net.Conn, message *wire.Message) error {
	packed, err := wire.Pack(message)
	if nil != err {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(waitFor))
	_, err = conn.Write(packed)
	return err
}

func writeHello(conn net.Conn, hello *wire.Hello) error {
	message, err := wire.NewHello(hello)
	if nil != err {
		return err
	}
	return writeFrame(conn, message)
}

func readFrame(conn net.Conn) (*wire.Message, error) {
	_ = conn.SetReadDeadline(time.Now().Add(waitFor))

	var header wire.Header
	if _, err := io.ReadFull(conn, header[:]); nil != err {
		return nil, err
	}
	length, err := wire.DecodeLength(header)
	if nil != err {
		return nil, err
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(conn, body); nil != err {
		return nil, err
	}
	return wire.UnpackMessage(body)
}

func waitClosed(t *testing.T, done <-chan struct{}) {
	select {
	case <-done:
	case <-time.After(waitFor + peer.DefaultHelloTimeout):
		t.Fatal("timed out waiting for teardown")
	}
}
