// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

const (
	defaultQueueSize = 100
)

// Message - a command and its parameters
type Message struct {
	Command    string
	Parameters []string
}

// Queue - a bounded FIFO of messages
type Queue struct {
	c chan Message
}

// New - create a queue holding up to size messages, zero selects a
// default size
func New(size int) *Queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Queue{
		c: make(chan Message, size),
	}
}

// Send - queue a message without blocking
//
// returns false if the queue is full and the message was discarded
func (queue *Queue) Send(command string, parameters ...string) bool {
	select {
	case queue.c <- Message{Command: command, Parameters: parameters}:
		return true
	default:
		return false
	}
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Message {
	return queue.c
}
