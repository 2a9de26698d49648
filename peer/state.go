// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

// Role - which side opened the transport
type Role int

// roles
const (
	// we dialled the remote
	Initiator Role = iota

	// the remote dialled us
	Acceptor
)

func (role Role) String() string {
	switch role {
	case Initiator:
		return "Initiator"
	case Acceptor:
		return "Acceptor"
	default:
		return "*Unknown*"
	}
}

// State - connection state, only ever moves forward
type State int32

// states of a connection
const (
	// dialling, or adopted but not yet running
	StateConnecting State = iota

	// transport open, read chain running
	StateActive

	// torn down, terminal
	StateClosing
)

func (state State) String() string {
	switch state {
	case StateConnecting:
		return "Connecting"
	case StateActive:
		return "Active"
	case StateClosing:
		return "Closing"
	default:
		return "*Unknown*"
	}
}

// outcome of the hello deadline, decided once on the loop
type helloOutcome int

const (
	helloAwaited helloOutcome = iota
	helloReceived
	helloExpired

	// valid hello but not admitted, input is no longer consumed
	helloRefused
)
