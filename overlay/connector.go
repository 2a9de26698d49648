// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package overlay

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/overlayd/messagebus"
	"github.com/bitmark-inc/overlayd/util"
)

const (
	defaultCycleInterval = 15 * time.Second
)

// Dialler - starts outbound connections, Manager satisfies this
type Dialler interface {
	Connect(address string, port uint16) bool
}

type endpoint struct {
	address string
	port    uint16
}

// Connector - keeps outbound connections to a static list of nodes
type Connector struct {
	log       *logger.L
	dialler   Dialler
	endpoints []endpoint
	interval  time.Duration
	events    *messagebus.Queue
}

// NewConnector - connect is a list of "IP:port"; events may be nil
func NewConnector(connect []string, dialler Dialler, events *messagebus.Queue, interval time.Duration) (*Connector, error) {
	c := &Connector{
		log:       logger.New("connector"),
		dialler:   dialler,
		endpoints: make([]endpoint, 0, len(connect)),
		interval:  interval,
		events:    events,
	}
	if c.interval <= 0 {
		c.interval = defaultCycleInterval
	}

	for _, hostPort := range connect {
		address, port, err := util.SplitIPandPort(hostPort)
		if nil != err {
			c.log.Errorf("connect: %q  error: %s", hostPort, err)
			return nil, err
		}
		c.endpoints = append(c.endpoints, endpoint{address: address, port: port})
	}
	return c, nil
}

// Run - background process: try each endpoint every cycle, and at
// once when an outbound connection ends
func (c *Connector) Run(args interface{}, shutdown <-chan struct{}) {
	log := c.log
	log.Info("starting…")

	var queue <-chan messagebus.Message
	if nil != c.events {
		queue = c.events.Chan()
	}

	c.process()

	timer := time.After(c.interval)

loop:
	for {
		log.Debug("waiting…")

		select {
		case <-shutdown:
			break loop
		case <-timer:
			timer = time.After(c.interval)
			c.process()
		case item := <-queue:
			log.Debugf("received control: %s  parameters: %v", item.Command, item.Parameters)
			if CommandDisconnected == item.Command {
				c.process()
			}
		}
	}
	log.Info("stopped")
}

func (c *Connector) process() {
	for _, e := range c.endpoints {
		if c.dialler.Connect(e.address, e.port) {
			c.log.Infof("connecting to: %s", util.CanonicalIPandPort(e.address, e.port))
		}
	}
}
