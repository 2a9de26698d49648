// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reactor

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
)

// Loop - executes posted actions one at a time in the order posted
type Loop struct {
	sync.Mutex

	log      *logger.L
	pending  []func()
	wake     chan struct{}
	stopped  bool
	finished chan struct{}
}

// Timer - a pending AfterFunc
type Timer struct {
	timer *time.Timer
}

// New - create a loop, it does nothing until Run is called
func New(name string) *Loop {
	return &Loop{
		log:      logger.New(name),
		pending:  make([]func(), 0, 16),
		wake:     make(chan struct{}, 1),
		finished: make(chan struct{}),
	}
}

// Post - queue an action for the loop goroutine
//
// never blocks, so it is safe to call from an action already running
// on the loop; returns false if the loop has stopped
func (l *Loop) Post(action func()) bool {
	l.Lock()
	if l.stopped {
		l.Unlock()
		return false
	}
	l.pending = append(l.pending, action)
	l.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Do - run an action on the loop and wait for it to finish
//
// must not be called from the loop goroutine
func (l *Loop) Do(action func()) bool {
	done := make(chan struct{})
	ok := l.Post(func() {
		defer close(done)
		action()
	})
	if !ok {
		return false
	}
	select {
	case <-done:
		return true
	case <-l.finished:
		// the final drain may have run it
		select {
		case <-done:
			return true
		default:
			return false
		}
	}
}

// AfterFunc - post action to the loop once d has elapsed
func (l *Loop) AfterFunc(d time.Duration, action func()) *Timer {
	return &Timer{
		timer: time.AfterFunc(d, func() {
			l.Post(action)
		}),
	}
}

// Stop - prevent the timer from posting its action
//
// returns false if the action was already posted; the action itself
// must then decide whether it is stale
func (t *Timer) Stop() bool {
	return t.timer.Stop()
}

// Stopped - true once Run has returned
func (l *Loop) Stopped() <-chan struct{} {
	return l.finished
}

// Run - the loop body, compatible with background.Process
//
// on shutdown the actions already queued are still executed, later
// posts are refused
func (l *Loop) Run(args interface{}, shutdown <-chan struct{}) {

	log := l.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-l.wake:
			l.drain()
		}
	}

	l.Lock()
	l.stopped = true
	l.Unlock()

	// anything posted before the stop
	l.drain()

	close(l.finished)
	log.Info("stopped")
}

// run every queued action
func (l *Loop) drain() {
	l.Lock()
	actions := l.pending
	l.pending = make([]func(), 0, 16)
	l.Unlock()

	for _, action := range actions {
		action()
	}
}
