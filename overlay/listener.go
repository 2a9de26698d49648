// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package overlay

import (
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/overlayd/fault"
)

// pause after an accept error that is not a close
const acceptRetryDelay = 100 * time.Millisecond

// Acceptor - receives inbound transports, Manager satisfies this
type Acceptor interface {
	Accept(transport net.Conn) bool
}

// Listener - accepts inbound transports on one or more addresses
type Listener struct {
	log       *logger.L
	listeners []net.Listener
	acceptor  Acceptor
	limiter   *rate.Limiter
}

// NewListener - bind all addresses, "*:PORT" listens on every
// interface
func NewListener(addresses []string, acceptor Acceptor, acceptRate float64, acceptBurst int) (*Listener, error) {
	log := logger.New("listener")

	if 0 == len(addresses) {
		return nil, fault.ErrMissingListen
	}

	l := &Listener{
		log:       log,
		listeners: make([]net.Listener, 0, len(addresses)),
		acceptor:  acceptor,
		limiter:   rate.NewLimiter(rate.Limit(acceptRate), acceptBurst),
	}
	if acceptRate <= 0 {
		l.limiter = rate.NewLimiter(rate.Inf, 0)
	}

	for _, address := range addresses {
		if strings.HasPrefix(address, "*:") {
			address = "[::]:" + strings.TrimPrefix(address, "*:")
		}
		listener, err := net.Listen("tcp", address)
		if nil != err {
			log.Errorf("listen on: %q  error: %s", address, err)
			l.close()
			return nil, err
		}
		log.Infof("listening on: %s", listener.Addr())
		l.listeners = append(l.listeners, listener)
	}
	return l, nil
}

// Addresses - the bound addresses, useful when a port was zero
func (l *Listener) Addresses() []net.Addr {
	addresses := make([]net.Addr, 0, len(l.listeners))
	for _, listener := range l.listeners {
		addresses = append(addresses, listener.Addr())
	}
	return addresses
}

// Run - background process: accept until shutdown
func (l *Listener) Run(args interface{}, shutdown <-chan struct{}) {
	log := l.log
	log.Info("starting…")

	var wg sync.WaitGroup
	for _, listener := range l.listeners {
		wg.Add(1)
		go func(listener net.Listener) {
			defer wg.Done()
			l.serve(listener)
		}(listener)
	}

	<-shutdown

	log.Info("shutting down…")
	l.close()
	wg.Wait()
	log.Info("stopped")
}

func (l *Listener) serve(listener net.Listener) {
	for {
		transport, err := listener.Accept()
		if errors.Is(err, net.ErrClosed) {
			return
		}
		if nil != err {
			l.log.Warnf("accept on: %s  error: %s", listener.Addr(), err)
			time.Sleep(acceptRetryDelay)
			continue
		}

		err = limit(l.limiter)
		if nil != err {
			l.log.Warnf("refuse: %s  error: %s", transport.RemoteAddr(), err)
			transport.Close()
			continue
		}

		if !l.acceptor.Accept(transport) {
			l.log.Warnf("refuse: %s  error: %s", transport.RemoteAddr(), fault.ErrNotAcceptingConnections)
			transport.Close()
		}
	}
}

func (l *Listener) close() {
	for _, listener := range l.listeners {
		if err := listener.Close(); nil != err && !errors.Is(err, net.ErrClosed) {
			l.log.Warnf("close: %s  error: %s", listener.Addr(), err)
		}
	}
}
