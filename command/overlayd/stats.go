// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/overlayd/overlay"
)

const (
	statsDelay = 60 * time.Second
)

// periodic traffic summary
type stats struct {
	manager *overlay.Manager
}

func (s *stats) Run(args interface{}, shutdown <-chan struct{}) {

	log := logger.New("stats")

	for {
		counters := s.manager.Counters()
		log.Infof(
			"connections: %d  messages read: %d  written: %d  bytes read: %d  written: %d",
			s.manager.Count(),
			counters.MessageRead.Uint64(),
			counters.MessageWrite.Uint64(),
			counters.ByteRead.Uint64(),
			counters.ByteWrite.Uint64(),
		)

		select {
		case <-shutdown:
			return
		case <-time.After(statsDelay):
		}
	}
}
